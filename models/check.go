package models

import "time"

// Check is one issued reimbursement check.
type Check struct {
	ID            string    `json:"id"`
	Number        int       `json:"number"`
	PayTo         string    `json:"payTo"`
	Amount        float64   `json:"amount"`
	AmountInWords string    `json:"amountInWords"`
	Memo          string    `json:"memo,omitempty"`
	ExpenseID     string    `json:"expenseId,omitempty"`
	Date          time.Time `json:"date"`
	IssuedBy      string    `json:"issuedBy"`
	UserID        string    `json:"userId"`
}

// BankAccount holds the checking account details printed on checks. The
// account number is stored encrypted and only ever returned masked.
type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	UserID        string `json:"userId"`
}
