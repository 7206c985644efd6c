package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"madebread/backend/database"
	"madebread/backend/middleware"
	"madebread/backend/models"
)

func GetPettyCashEntries(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, amount, type, description, date, entered_by, user_id
		FROM petty_cash
		WHERE user_id = ?
		ORDER BY date DESC
	`, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var entries []models.PettyCashEntry
	for rows.Next() {
		var e models.PettyCashEntry
		err := rows.Scan(&e.ID, &e.Amount, &e.Type, &e.Description, &e.Date, &e.EnteredBy, &e.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		entries = append(entries, e)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func AddPettyCashEntry(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var e models.PettyCashEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if e.Amount <= 0 || e.Description == "" {
		http.Error(w, "amount and description are required", http.StatusBadRequest)
		return
	}
	if e.Type != "in" && e.Type != "out" {
		http.Error(w, "type must be 'in' or 'out'", http.StatusBadRequest)
		return
	}

	e.ID = uuid.NewString()
	e.UserID = access.DataOwnerID
	e.EnteredBy = access.Principal.ID
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	_, err := database.DB.Exec(`
		INSERT INTO petty_cash (id, amount, type, description, date, entered_by, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Amount, e.Type, e.Description, e.Date, e.EnteredBy, e.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// GetPettyCashBalance returns the running balance: replenishments minus
// disbursements.
func GetPettyCashBalance(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var balance float64
	err := database.DB.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN amount ELSE -amount END), 0)
		FROM petty_cash
		WHERE user_id = ?
	`, access.DataOwnerID).Scan(&balance)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"balance": balance})
}
