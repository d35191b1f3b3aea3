package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/test"
)

// expect returns the expected status codes, defaulting to 201 Created.
func expect(expectedStatus []int) []int {
	if len(expectedStatus) == 0 {
		return []int{http.StatusCreated}
	}
	return expectedStatus
}

func createTestAccount(t *testing.T, account v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if account.Name == "" {
		account.Name = uuid.NewString()
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{account})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var a v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &a)

	if r.Code == http.StatusCreated {
		return a.Data[0]
	}

	return v1.AccountResponse{}
}

// createCreditAccount creates an account with credit enabled.
func createCreditAccount(t *testing.T, closingDay, dueDay int) v1.AccountResponse {
	return createTestAccount(t, v1.AccountEditable{
		HasCredit:   true,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		CreditLimit: 500000,
	})
}

func createTestEntry(t *testing.T, entry v1.EntryEditable, expectedStatus ...int) v1.EntryResponse {
	if entry.Amount == 0 {
		entry.Amount = 1000
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/entries", []v1.EntryEditable{entry})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var e v1.EntryCreateResponse
	test.DecodeResponse(t, &r, &e)

	if r.Code == http.StatusCreated {
		return e.Data[0]
	}

	return v1.EntryResponse{}
}

func createTestCounterparty(t *testing.T, counterparty v1.CounterpartyEditable, expectedStatus ...int) v1.CounterpartyResponse {
	if counterparty.Name == "" {
		counterparty.Name = uuid.NewString()
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/counterparties", []v1.CounterpartyEditable{counterparty})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var c v1.CounterpartyCreateResponse
	test.DecodeResponse(t, &r, &c)

	if r.Code == http.StatusCreated {
		return c.Data[0]
	}

	return v1.CounterpartyResponse{}
}

func createTestAsset(t *testing.T, asset v1.AssetEditable, expectedStatus ...int) v1.AssetResponse {
	if asset.Name == "" {
		asset.Name = uuid.NewString()
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/assets", []v1.AssetEditable{asset})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var a v1.AssetCreateResponse
	test.DecodeResponse(t, &r, &a)

	if r.Code == http.StatusCreated {
		return a.Data[0]
	}

	return v1.AssetResponse{}
}

func createTestBudgetLimit(t *testing.T, limit v1.BudgetLimitEditable, expectedStatus ...int) v1.BudgetLimitResponse {
	if limit.CategoryGroup == "" {
		limit.CategoryGroup = uuid.NewString()
	}

	if limit.LimitAmount == 0 {
		limit.LimitAmount = 40000
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-limits", []v1.BudgetLimitEditable{limit})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var b v1.BudgetLimitCreateResponse
	test.DecodeResponse(t, &r, &b)

	if r.Code == http.StatusCreated {
		return b.Data[0]
	}

	return v1.BudgetLimitResponse{}
}

func createTestRecurringRule(t *testing.T, rule v1.RecurringRuleCreate, expectedStatus ...int) v1.RecurringRuleResponse {
	if rule.Amount == 0 {
		rule.Amount = 1599
	}

	if rule.DayOfMonth == 0 {
		rule.DayOfMonth = 1
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/recurring-rules", []v1.RecurringRuleCreate{rule})
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var rr v1.RecurringRuleCreateResponse
	test.DecodeResponse(t, &r, &rr)

	if r.Code == http.StatusCreated {
		return rr.Data[0]
	}

	return v1.RecurringRuleResponse{}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
