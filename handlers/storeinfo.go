package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"madebread/backend/database"
	"madebread/backend/middleware"
	"madebread/backend/models"
)

// GetStoreInfo returns the business profile printed on checks and reports.
func GetStoreInfo(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var info models.StoreInfo
	var location, owner sql.NullString
	err := database.DB.QueryRow(`
		SELECT name, location, owner FROM store_info WHERE user_id = ?
	`, access.DataOwnerID).Scan(&info.Name, &location, &owner)
	if err == sql.ErrNoRows {
		http.Error(w, "No store info configured", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	info.Location = location.String
	info.Owner = owner.String

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// SaveStoreInfo upserts the business profile. Owner-only, enforced on the
// route.
func SaveStoreInfo(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var info models.StoreInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if info.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO store_info (user_id, name, location, owner)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			owner = excluded.owner
	`, access.DataOwnerID, info.Name, info.Location, info.Owner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}
