package models

import "time"

// Customer is a billing contact in the owner's records.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

// StoreInfo is the business profile shown on printed checks and reports.
type StoreInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Owner    string `json:"owner"`
}
