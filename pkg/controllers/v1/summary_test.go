package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/test"
)

func getSummary(suite *TestSuiteStandard, expectedStatus int) v1.SummaryResponse {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func accountSummary(summary *ledger.Summary, id uuid.UUID) ledger.AccountSummary {
	for _, a := range summary.Accounts {
		if a.Account.ID == id {
			return a
		}
	}
	return ledger.AccountSummary{}
}

func (suite *TestSuiteStandard) TestSummaryOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSummaryDBClosed() {
	suite.CloseDB()

	response := getSummary(suite, http.StatusInternalServerError)
	suite.Assert().Nil(response.Data)
	suite.Assert().Contains(*response.Error, models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestSummaryEmpty() {
	summary := getSummary(suite, http.StatusOK).Data
	suite.Require().NotNil(summary)

	suite.Assert().Equal(currentMonth().String(), summary.Month.String())
	suite.Assert().Len(summary.Accounts, 0)
	suite.Assert().Equal(types.Money(0), summary.NetWorth)
	suite.Assert().Equal(types.Money(0), summary.FutureReceipts)
}

func (suite *TestSuiteStandard) TestSummary() {
	today := types.Day(time.Now())

	checking := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	card := createCreditAccount(suite.T(), 10, 20)
	alex := createTestCounterparty(suite.T(), v1.CounterpartyEditable{Name: "Alex"})
	_ = createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{CategoryGroup: "Food", LimitAmount: 200000})

	entries := []v1.EntryEditable{
		{Amount: 500000, Kind: models.KindIncome, OccurredOn: today, AccountID: &checking.Data.ID},
		{Amount: 120000, CategoryGroup: "Food", OccurredOn: today, AccountID: &checking.Data.ID},
		{Amount: 100000, Kind: models.KindIncome, IsFutureReceipt: true, OccurredOn: today, AccountID: &checking.Data.ID},
		{Amount: 80000, OccurredOn: today.AddDate(1, 0, 0), AccountID: &checking.Data.ID},
		{Amount: 30000, CategoryGroup: "Food", OccurredOn: today, AccountID: &card.Data.ID, PaymentMethod: models.PaymentCredit},
		{Amount: 2000, IsDebt: true, OccurredOn: today, AccountID: &checking.Data.ID, CounterpartyID: &alex.Data.ID},
		{Amount: 1000, IsDebt: true, DebtSettled: true, OccurredOn: today, AccountID: &checking.Data.ID, CounterpartyID: &alex.Data.ID},
	}

	for _, e := range entries {
		_ = createTestEntry(suite.T(), e)
	}

	summary := getSummary(suite, http.StatusOK).Data
	suite.Require().NotNil(summary)
	suite.Require().Len(summary.Accounts, 2)

	c := accountSummary(summary, checking.Data.ID)
	suite.Assert().Equal(types.Money(378000), c.Balance, "Future receipts, future entries and settled debts must not affect the balance")
	suite.Assert().Nil(c.InvoicePeriod)

	cc := accountSummary(summary, card.Data.ID)
	suite.Assert().Equal(types.Money(0), cc.Balance, "Credit charges must not affect the balance")
	suite.Require().NotNil(cc.InvoicePeriod)
	suite.Assert().Equal(ledger.InvoicePeriod(today, 10).String(), cc.InvoicePeriod.String())
	suite.Assert().Equal(types.Money(30000), cc.OpenInvoice)
	suite.Assert().Equal(types.Money(30000), cc.UnpaidInvoices)

	suite.Assert().Equal(types.Money(378000), summary.NetWorth)
	suite.Assert().Equal(types.Money(348000), summary.NetWorthAfterInvoices)
	suite.Assert().Equal(types.Money(100000), summary.FutureReceipts)

	suite.Require().Len(summary.Counterparties, 1)
	suite.Assert().Equal(types.Money(2000), summary.Counterparties[0].Balance)

	suite.Require().Len(summary.Budgets, 1)
	suite.Assert().Equal(types.Money(150000), summary.Budgets[0].Spent)
	suite.Assert().Equal(types.Money(50000), summary.Budgets[0].Remaining)

	// Paying the invoice moves the charges into the balance of the paying account
	_ = payInvoice(suite.T(), card, cc.InvoicePeriod.String(), v1.InvoicePaymentEditable{FromAccountID: &checking.Data.ID, Date: today})

	summary = getSummary(suite, http.StatusOK).Data
	suite.Assert().Equal(types.Money(348000), accountSummary(summary, checking.Data.ID).Balance)
	suite.Assert().Equal(types.Money(0), accountSummary(summary, card.Data.ID).UnpaidInvoices)
	suite.Assert().Equal(summary.NetWorth, summary.NetWorthAfterInvoices)
}
