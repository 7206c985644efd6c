package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"madebread/backend/database"
	"madebread/backend/middleware"
	"madebread/backend/models"
	"madebread/backend/security"
	"madebread/backend/services"
)

func GetChecks(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, number, pay_to, amount, amount_in_words, memo, expense_id, date, issued_by, user_id
		FROM checks
		WHERE user_id = ?
		ORDER BY number DESC
	`, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var checks []models.Check
	for rows.Next() {
		var c models.Check
		var memo, expenseID sql.NullString
		err := rows.Scan(&c.ID, &c.Number, &c.PayTo, &c.Amount, &c.AmountInWords, &memo, &expenseID, &c.Date, &c.IssuedBy, &c.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		c.Memo = memo.String
		c.ExpenseID = expenseID.String
		checks = append(checks, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checks)
}

// IssueCheck allocates the next check number, spells out the amount, records
// the check and, when it reimburses an expense, marks that expense paid.
func IssueCheck(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var request struct {
		PayTo     string  `json:"payTo"`
		Amount    float64 `json:"amount"`
		Memo      string  `json:"memo"`
		ExpenseID string  `json:"expenseId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.PayTo == "" || request.Amount <= 0 {
		http.Error(w, "payTo and a positive amount are required", http.StatusBadRequest)
		return
	}

	number, err := services.NextCheckNumber(database.DB, access.DataOwnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	check := models.Check{
		ID:            uuid.NewString(),
		Number:        number,
		PayTo:         request.PayTo,
		Amount:        request.Amount,
		AmountInWords: services.FormatCheckAmount(request.Amount),
		Memo:          request.Memo,
		ExpenseID:     request.ExpenseID,
		Date:          time.Now(),
		IssuedBy:      access.Principal.ID,
		UserID:        access.DataOwnerID,
	}

	_, err = database.DB.Exec(`
		INSERT INTO checks (id, number, pay_to, amount, amount_in_words, memo, expense_id, date, issued_by, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, check.ID, check.Number, check.PayTo, check.Amount, check.AmountInWords, check.Memo, check.ExpenseID, check.Date, check.IssuedBy, check.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if check.ExpenseID != "" {
		_, err = database.DB.Exec("UPDATE expenses SET reimbursed = 1 WHERE id = ? AND user_id = ?", check.ExpenseID, access.DataOwnerID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(check)
}

// SaveBankAccount stores the checking account used on printed checks. The
// account number is encrypted at rest.
func SaveBankAccount(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var account models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if account.BankName == "" || account.AccountName == "" || account.AccountNumber == "" {
		http.Error(w, "bankName, accountName and accountNumber are required", http.StatusBadRequest)
		return
	}

	encrypted, err := security.Encrypt(account.AccountNumber)
	if err != nil {
		http.Error(w, "Failed to encrypt account number: "+err.Error(), http.StatusInternalServerError)
		return
	}

	_, err = database.DB.Exec(`
		INSERT INTO bank_accounts (user_id, bank_name, account_name, account_number, routing_number)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			bank_name = excluded.bank_name,
			account_name = excluded.account_name,
			account_number = excluded.account_number,
			routing_number = excluded.routing_number
	`, access.DataOwnerID, account.BankName, account.AccountName, encrypted, account.RoutingNumber)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBankAccount returns the stored account with the number masked down to
// its last four digits.
func GetBankAccount(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	var account models.BankAccount
	var encrypted string
	var routingNumber sql.NullString
	err := database.DB.QueryRow(`
		SELECT bank_name, account_name, account_number, routing_number
		FROM bank_accounts WHERE user_id = ?
	`, access.DataOwnerID).Scan(&account.BankName, &account.AccountName, &encrypted, &routingNumber)
	if err == sql.ErrNoRows {
		http.Error(w, "No bank account configured", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	decrypted, err := security.Decrypt(encrypted)
	if err != nil {
		http.Error(w, "Failed to decrypt account number: "+err.Error(), http.StatusInternalServerError)
		return
	}

	account.AccountNumber = maskAccountNumber(decrypted)
	account.RoutingNumber = routingNumber.String
	account.UserID = access.DataOwnerID

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}

func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
