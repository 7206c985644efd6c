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

func GetIncome(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	query := `
		SELECT id, amount, description, source, customer_id, date, entered_by, user_id
		FROM income
		WHERE user_id = ?
	`
	args := []interface{}{access.DataOwnerID}

	customerID := r.URL.Query().Get("customerId")
	if customerID != "" {
		query += " AND customer_id = ?"
		args = append(args, customerID)
	}

	query += " ORDER BY date DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var entries []models.Income
	for rows.Next() {
		var in models.Income
		var source, customer sql.NullString
		err := rows.Scan(&in.ID, &in.Amount, &in.Description, &source, &customer, &in.Date, &in.EnteredBy, &in.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		in.Source = source.String
		in.CustomerID = customer.String
		entries = append(entries, in)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func AddIncome(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var in models.Income
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if in.Amount <= 0 || in.Description == "" {
		http.Error(w, "amount and description are required", http.StatusBadRequest)
		return
	}

	in.ID = uuid.NewString()
	in.UserID = access.DataOwnerID
	in.EnteredBy = access.Principal.ID
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	_, err := database.DB.Exec(`
		INSERT INTO income (id, amount, description, source, customer_id, date, entered_by, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, in.ID, in.Amount, in.Description, in.Source, in.CustomerID, in.Date, in.EnteredBy, in.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(in)
}

func DeleteIncome(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM income WHERE id = ? AND user_id = ?", id, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "Income entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
