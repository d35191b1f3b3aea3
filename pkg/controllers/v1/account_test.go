package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
)

func getAccount(t *testing.T, url string) v1.Account {
	r := test.Request(t, http.MethodGet, url, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(t, &r, &response)
	return *response.Data
}

func getInvoices(t *testing.T, account v1.AccountResponse) []ledger.Invoice {
	r := test.Request(t, http.MethodGet, account.Data.Links.Invoices, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.InvoiceListResponse
	test.DecodeResponse(t, &r, &response)
	return response.Data
}

func payInvoice(t *testing.T, account v1.AccountResponse, period string, body any, expectedStatus ...int) v1.EntryResponse {
	url := fmt.Sprintf("%s/%s/pay", account.Data.Links.Invoices, period)
	r := test.Request(t, http.MethodPost, url, body)
	test.AssertHTTPStatus(t, &r, expect(expectedStatus)...)

	var response v1.EntryResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestAccount(t, v1.AccountEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/accounts", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.AccountListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestAccountsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAccountsOptions() {
	account := createCreditAccount(suite.T(), 10, 20)

	tests := []struct {
		name   string
		path   string // path at the Accounts endpoint to test
		status int    // Expected HTTP status code
		allow  string
	}{
		{"No Account with this ID", uuid.New().String(), http.StatusNotFound, ""},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest, ""},
		{"Account exists", account.Data.ID.String(), http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Default", account.Data.ID.String() + "/default", http.StatusNoContent, "OPTIONS, POST"},
		{"Invoices", account.Data.ID.String() + "/invoices", http.StatusNoContent, "OPTIONS, GET"},
		{"Pay invoice", account.Data.ID.String() + "/invoices/2024-06/pay", http.StatusNoContent, "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.path)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}

// TestAccountsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Account", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
		{"Default No Account with this ID", uuid.New().String() + "/default", http.StatusNotFound, http.MethodPost},
		{"Invoices No Account with this ID", uuid.New().String() + "/invoices", http.StatusNotFound, http.MethodGet},
		{"Invoices Invalid ID (string)", "notaUUID/invoices", http.StatusBadRequest, http.MethodGet},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	first := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	suite.Assert().True(first.Data.IsDefault, "The first account must be the default account")
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/accounts/%s/invoices", first.Data.ID), first.Data.Links.Invoices)

	second := createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings"})
	suite.Assert().False(second.Data.IsDefault)

	third := createTestAccount(suite.T(), v1.AccountEditable{Name: "Card", IsDefault: true, HasCredit: true, ClosingDay: 5, DueDay: 12, CreditLimit: 250000})
	suite.Assert().True(third.Data.IsDefault)
	suite.Assert().Equal(types.Money(250000), third.Data.CreditLimit)
	suite.Assert().False(getAccount(suite.T(), first.Data.Links.Self).IsDefault, "A new default account must replace the previous one")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)
}

func (suite *TestSuiteStandard) TestAccountsCreateFails() {
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `[{ "name": 2 }]`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
		{"Duplicate name", []v1.AccountEditable{{Name: "Checking"}}, http.StatusBadRequest},
		{"Credit without closing day", []v1.AccountEditable{{Name: "Card", HasCredit: true}}, http.StatusBadRequest},
		{"Closing day too high", `[{ "name": "Card", "hasCredit": true, "closingDay": 32 }]`, http.StatusBadRequest},
		{"Negative credit limit", []v1.AccountEditable{{Name: "Card", HasCredit: true, ClosingDay: 3, CreditLimit: -100}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	first := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	second := createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings"})

	r := test.Request(suite.T(), http.MethodPatch, second.Data.Links.Self, `{ "name": "Rainy day fund" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Rainy day fund", response.Data.Name)
	suite.Assert().False(response.Data.IsDefault)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"Default flag cannot be removed", first.Data.Links.Self, `{ "isDefault": false }`, http.StatusConflict},
		{"Empty name", second.Data.Links.Self, `{ "name": "" }`, http.StatusBadRequest},
		{"Duplicate name", second.Data.Links.Self, `{ "name": "Checking" }`, http.StatusBadRequest},
		{"Empty body", second.Data.Links.Self, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// Making an account the default through an update clears the previous default
	r = test.Request(suite.T(), http.MethodPatch, second.Data.Links.Self, `{ "isDefault": true }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().False(getAccount(suite.T(), first.Data.Links.Self).IsDefault)
}

func (suite *TestSuiteStandard) TestAccountsSetDefault() {
	first := createTestAccount(suite.T(), v1.AccountEditable{})
	second := createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodPost, second.Data.Links.Default, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.IsDefault)
	suite.Assert().False(getAccount(suite.T(), first.Data.Links.Self).IsDefault)

	// Setting the default account again does not change anything
	r = test.Request(suite.T(), http.MethodPost, second.Data.Links.Default, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().True(getAccount(suite.T(), second.Data.Links.Self).IsDefault)
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	first := createTestAccount(suite.T(), v1.AccountEditable{})
	second := createTestAccount(suite.T(), v1.AccountEditable{})
	third := createTestAccount(suite.T(), v1.AccountEditable{})

	_ = createTestEntry(suite.T(), v1.EntryEditable{AccountID: &third.Data.ID})
	_ = createTestRecurringRule(suite.T(), v1.RecurringRuleCreate{RecurringRuleEditable: v1.RecurringRuleEditable{AccountID: &second.Data.ID}})

	r := test.Request(suite.T(), http.MethodDelete, third.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = test.Request(suite.T(), http.MethodDelete, second.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// Deleting the default account makes the oldest remaining account the default
	r = test.Request(suite.T(), http.MethodDelete, first.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().True(getAccount(suite.T(), second.Data.Links.Self).IsDefault)

	r = test.Request(suite.T(), http.MethodGet, first.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDeleteLast() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestAccountsInvoices() {
	account := createCreditAccount(suite.T(), 10, 20)
	credit := func(amount types.Money, on time.Time) v1.EntryResponse {
		return createTestEntry(suite.T(), v1.EntryEditable{
			Amount:        amount,
			OccurredOn:    on,
			AccountID:     &account.Data.ID,
			PaymentMethod: models.PaymentCredit,
		})
	}

	_ = credit(1000, date(2024, time.June, 5))
	_ = credit(2000, date(2024, time.June, 12))
	_ = credit(500, date(2024, time.July, 1))

	// Direct payments are not part of any invoice
	_ = createTestEntry(suite.T(), v1.EntryEditable{Amount: 700, OccurredOn: date(2024, time.June, 6), AccountID: &account.Data.ID})

	invoices := getInvoices(suite.T(), account)
	suite.Require().Len(invoices, 2)

	suite.Assert().Equal("2024-06", invoices[0].Period.String())
	suite.Assert().Equal(types.Money(1000), invoices[0].Total)
	suite.Assert().Equal(types.Money(1000), invoices[0].Open)
	suite.Assert().Equal(1, invoices[0].Entries)
	suite.Assert().False(invoices[0].Settled)
	suite.Assert().Equal(date(2024, time.June, 10), invoices[0].ClosingDate)
	suite.Assert().Equal(date(2024, time.June, 20), invoices[0].DueDate)

	suite.Assert().Equal("2024-07", invoices[1].Period.String())
	suite.Assert().Equal(types.Money(2500), invoices[1].Total)
	suite.Assert().Equal(2, invoices[1].Entries)

	// Accounts without credit have no invoices
	direct := createTestAccount(suite.T(), v1.AccountEditable{})
	suite.Assert().Len(getInvoices(suite.T(), direct), 0)
}

// TestAccountsPayInvoice verifies that paying an invoice settles its
// entries and that deleting the payment reopens them.
func (suite *TestSuiteStandard) TestAccountsPayInvoice() {
	account := createCreditAccount(suite.T(), 10, 20)
	checking := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})

	june := createTestEntry(suite.T(), v1.EntryEditable{Amount: 1000, OccurredOn: date(2024, time.June, 5), AccountID: &account.Data.ID, PaymentMethod: models.PaymentCredit})
	july1 := createTestEntry(suite.T(), v1.EntryEditable{Amount: 2000, OccurredOn: date(2024, time.June, 12), AccountID: &account.Data.ID, PaymentMethod: models.PaymentCredit})
	july2 := createTestEntry(suite.T(), v1.EntryEditable{Amount: 500, OccurredOn: date(2024, time.July, 1), AccountID: &account.Data.ID, PaymentMethod: models.PaymentCredit})

	payment := payInvoice(suite.T(), account, "2024-07", "")
	suite.Assert().True(payment.Data.IsInvoicePayment)
	suite.Assert().Equal(types.Money(2500), payment.Data.Amount)
	suite.Assert().Equal(account.Data.ID, *payment.Data.AccountID, "The payment must default to the credit account")
	suite.Assert().ElementsMatch([]uuid.UUID{july1.Data.ID, july2.Data.ID}, payment.Data.RelatedEntryIDs)

	invoices := getInvoices(suite.T(), account)
	suite.Require().Len(invoices, 2)
	suite.Assert().False(invoices[0].Settled)
	suite.Assert().True(invoices[1].Settled)
	suite.Assert().Equal(types.Money(0), invoices[1].Open)

	// Nothing left to pay
	_ = payInvoice(suite.T(), account, "2024-07", "", http.StatusConflict)

	// Settled entries cannot be deleted or have their amount changed
	r := test.Request(suite.T(), http.MethodDelete, july1.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = test.Request(suite.T(), http.MethodPatch, july1.Data.Links.Self, `{ "amount": "1.00" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// Invoice payments cannot be edited
	r = test.Request(suite.T(), http.MethodPatch, payment.Data.Links.Self, `{ "amount": "1.00" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// Paying selected entries from another account
	partial := payInvoice(suite.T(), account, "2024-06", v1.InvoicePaymentEditable{
		EntryIDs:      []uuid.UUID{june.Data.ID},
		FromAccountID: &checking.Data.ID,
		Date:          date(2024, time.June, 20),
	})
	suite.Assert().Equal(checking.Data.ID, *partial.Data.AccountID)
	suite.Assert().Equal(date(2024, time.June, 20), partial.Data.OccurredOn)
	suite.Assert().Equal(types.Money(1000), partial.Data.Amount)

	// Deleting the payment reopens the invoice
	r = test.Request(suite.T(), http.MethodDelete, payment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, july1.Data.Links.Self, "")
	var entry v1.EntryResponse
	test.DecodeResponse(suite.T(), &r, &entry)
	suite.Assert().False(entry.Data.IsInvoiceSettled)

	invoices = getInvoices(suite.T(), account)
	suite.Assert().True(invoices[0].Settled)
	suite.Assert().False(invoices[1].Settled)
}

func (suite *TestSuiteStandard) TestAccountsPayInvoiceFails() {
	account := createCreditAccount(suite.T(), 10, 20)
	direct := createTestAccount(suite.T(), v1.AccountEditable{})

	june := createTestEntry(suite.T(), v1.EntryEditable{OccurredOn: date(2024, time.June, 5), AccountID: &account.Data.ID, PaymentMethod: models.PaymentCredit})

	tests := []struct {
		name    string
		account v1.AccountResponse
		period  string
		body    any
		status  int
	}{
		{"Invalid period", account, "2024-13", "", http.StatusBadRequest},
		{"Account without credit", direct, "2024-06", "", http.StatusBadRequest},
		{"Empty invoice", account, "2024-01", "", http.StatusConflict},
		{"Entry of another invoice", account, "2024-07", v1.InvoicePaymentEditable{EntryIDs: []uuid.UUID{june.Data.ID}}, http.StatusBadRequest},
		{"Non-existing entry", account, "2024-06", v1.InvoicePaymentEditable{EntryIDs: []uuid.UUID{uuid.New()}}, http.StatusNotFound},
		{"Non-existing source account", account, "2024-06", v1.InvoicePaymentEditable{FromAccountID: &[]uuid.UUID{uuid.New()}[0]}, http.StatusNotFound},
		{"Broken body", account, "2024-06", `{ "entryIds": 3 `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_ = payInvoice(t, tt.account, tt.period, tt.body, tt.status)
		})
	}

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/accounts/%s/invoices/2024-06/pay", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
