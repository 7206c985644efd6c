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

func GetCustomers(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, name, email, phone, address, notes, created_at, user_id
		FROM customers
		WHERE user_id = ?
		ORDER BY name
	`, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var email, phone, address, notes sql.NullString
		err := rows.Scan(&c.ID, &c.Name, &email, &phone, &address, &notes, &c.CreatedAt, &c.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		c.Email = email.String
		c.Phone = phone.String
		c.Address = address.String
		c.Notes = notes.String
		customers = append(customers, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func AddCustomer(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if c.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	c.ID = uuid.NewString()
	c.UserID = access.DataOwnerID
	c.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO customers (id, name, email, phone, address, notes, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.Notes, c.CreatedAt, c.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE customers
		SET name = ?, email = ?, phone = ?, address = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`, c.Name, c.Email, c.Phone, c.Address, c.Notes, id, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	c.ID = id
	c.UserID = access.DataOwnerID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM customers WHERE id = ? AND user_id = ?", id, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
