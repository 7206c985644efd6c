package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"madebread/backend/models"
	"madebread/backend/security"
)

func TestIssueCheck(t *testing.T) {
	setupTestResolver(t)
	owner := testOwnerAccess("owner-1")

	body := bytes.NewBufferString(`{"payTo": "Manila Flour Co", "amount": 125.50, "memo": "March delivery"}`)
	rr := httptest.NewRecorder()
	IssueCheck(rr, withAccess(httptest.NewRequest("POST", "/checks", body), owner))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var check models.Check
	if err := json.NewDecoder(rr.Body).Decode(&check); err != nil {
		t.Fatalf("failed to decode check: %v", err)
	}
	if check.Number != 1001 {
		t.Errorf("expected the first check numbered 1001, got %d", check.Number)
	}
	if check.AmountInWords != "one hundred twenty-five and 50/100 dollars" {
		t.Errorf("unexpected written amount: %q", check.AmountInWords)
	}

	// The next check advances the sequence.
	body = bytes.NewBufferString(`{"payTo": "Makati Sugar", "amount": 1000}`)
	rr = httptest.NewRecorder()
	IssueCheck(rr, withAccess(httptest.NewRequest("POST", "/checks", body), owner))
	if err := json.NewDecoder(rr.Body).Decode(&check); err != nil {
		t.Fatalf("failed to decode check: %v", err)
	}
	if check.Number != 1002 {
		t.Errorf("expected the second check numbered 1002, got %d", check.Number)
	}
}

func TestIssueCheckMarksExpenseReimbursed(t *testing.T) {
	setupTestResolver(t)
	owner := testOwnerAccess("owner-1")

	body := bytes.NewBufferString(`{"amount": 125.50, "description": "Flour delivery", "reimburseTo": "Ana"}`)
	rr := httptest.NewRecorder()
	AddExpense(rr, withAccess(httptest.NewRequest("POST", "/expenses", body), owner))
	var expense models.Expense
	if err := json.NewDecoder(rr.Body).Decode(&expense); err != nil {
		t.Fatalf("failed to decode expense: %v", err)
	}

	body = bytes.NewBufferString(`{"payTo": "Ana", "amount": 125.50, "expenseId": "` + expense.ID + `"}`)
	rr = httptest.NewRecorder()
	IssueCheck(rr, withAccess(httptest.NewRequest("POST", "/checks", body), owner))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	GetExpenses(rr, withAccess(httptest.NewRequest("GET", "/expenses?reimbursed=true", nil), owner))
	var expenses []models.Expense
	if err := json.NewDecoder(rr.Body).Decode(&expenses); err != nil {
		t.Fatalf("failed to decode expenses: %v", err)
	}
	if len(expenses) != 1 || !expenses[0].Reimbursed {
		t.Errorf("expected the expense marked reimbursed, got %+v", expenses)
	}
}

func TestBankAccountMaskedOnRead(t *testing.T) {
	setupTestResolver(t)
	security.InitializeEncryption("test-key")
	owner := testOwnerAccess("owner-1")

	body := bytes.NewBufferString(`{"bankName": "BPI", "accountName": "Made Bread", "accountNumber": "123456789", "routingNumber": "010040048"}`)
	rr := httptest.NewRecorder()
	SaveBankAccount(rr, withAccess(httptest.NewRequest("PUT", "/checks/bank-account", body), owner))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	GetBankAccount(rr, withAccess(httptest.NewRequest("GET", "/checks/bank-account", nil), owner))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var account models.BankAccount
	if err := json.NewDecoder(rr.Body).Decode(&account); err != nil {
		t.Fatalf("failed to decode account: %v", err)
	}
	if account.AccountNumber != "*****6789" {
		t.Errorf("expected the number masked to its last four digits, got %q", account.AccountNumber)
	}
	if account.BankName != "BPI" {
		t.Errorf("unexpected bank name %q", account.BankName)
	}
}

func TestGetBankAccountNotConfigured(t *testing.T) {
	setupTestResolver(t)

	rr := httptest.NewRecorder()
	GetBankAccount(rr, withAccess(httptest.NewRequest("GET", "/checks/bank-account", nil), testOwnerAccess("owner-1")))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 with no account configured, got %d", rr.Code)
	}
}
