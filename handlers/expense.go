package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"madebread/backend/database"
	"madebread/backend/middleware"
	"madebread/backend/models"
)

func GetExpenses(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	query := `
		SELECT id, amount, description, category, date, reimburse_to, reimbursed, entered_by, user_id
		FROM expenses
		WHERE user_id = ?
	`
	args := []interface{}{access.DataOwnerID}

	// Parse query parameters
	category := r.URL.Query().Get("category")
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	reimbursed := r.URL.Query().Get("reimbursed")
	if reimbursed != "" {
		query += " AND reimbursed = ?"
		args = append(args, reimbursed == "true")
	}

	query += " ORDER BY date DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var category, reimburseTo sql.NullString
		err := rows.Scan(&e.ID, &e.Amount, &e.Description, &category, &e.Date, &reimburseTo, &e.Reimbursed, &e.EnteredBy, &e.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		e.Category = category.String
		e.ReimburseTo = reimburseTo.String
		expenses = append(expenses, e)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

func AddExpense(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var e models.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if e.Amount <= 0 || e.Description == "" {
		http.Error(w, "amount and description are required", http.StatusBadRequest)
		return
	}

	e.ID = uuid.NewString()
	// Expenses always land on the data owner's ledger; team members write
	// into the owner's data, not their own.
	e.UserID = access.DataOwnerID
	e.EnteredBy = access.Principal.ID
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	_, err := database.DB.Exec(`
		INSERT INTO expenses (id, amount, description, category, date, reimburse_to, reimbursed, entered_by, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Amount, e.Description, e.Category, e.Date, e.ReimburseTo, e.Reimbursed, e.EnteredBy, e.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", id, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
