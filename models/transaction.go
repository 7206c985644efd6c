package models

import "time"

// Expense is one money-out entry in the ledger. ReimburseTo marks expenses
// that should be paid back by printed check.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	ReimburseTo string    `json:"reimburseTo,omitempty"`
	Reimbursed  bool      `json:"reimbursed"`
	EnteredBy   string    `json:"enteredBy"`
	UserID      string    `json:"userId"`
}

// Income is one money-in entry in the ledger.
type Income struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	CustomerID  string    `json:"customerId,omitempty"`
	Date        time.Time `json:"date"`
	EnteredBy   string    `json:"enteredBy"`
	UserID      string    `json:"userId"`
}

// PettyCashEntry records a replenishment or disbursement of the cash box.
// Type is "in" or "out"; the running balance is the signed sum of entries.
type PettyCashEntry struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	EnteredBy   string    `json:"enteredBy"`
	UserID      string    `json:"userId"`
}
