package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/test"
)

func (suite *TestSuiteStandard) createInstallments(plan any, expectedStatus ...int) v1.EntryListResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/installments", plan)
	test.AssertHTTPStatus(suite.T(), &r, expect(expectedStatus)...)

	var response v1.EntryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestInstallmentsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/installments", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestInstallmentsCreate() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	response := suite.createInstallments(v1.InstallmentPlanEditable{
		Amount: 10000,
		Count:  3,
		Start:  date(2024, time.January, 31),
		Template: v1.EntryEditable{
			CategoryName: "Electronics",
			Description:  "Headphones",
			AccountID:    &account.Data.ID,
		},
	})
	suite.Require().Len(response.Data, 3)

	var sum types.Money
	for i, e := range response.Data {
		sum += e.Amount
		suite.Assert().Equal(i+1, e.InstallmentIndex)
		suite.Assert().Equal(3, e.InstallmentTotal)
		suite.Assert().Equal(*response.Data[0].InstallmentGroupID, *e.InstallmentGroupID)
		suite.Assert().Equal("Headphones", e.Description)
		suite.Assert().Equal(models.KindExpense, e.Kind)
	}
	suite.Assert().Equal(types.Money(10000), sum, "Installments must sum up to the nominal amount")
	suite.Assert().Equal(types.Money(3334), response.Data[0].Amount)

	suite.Assert().Equal(date(2024, time.January, 31), response.Data[0].OccurredOn)
	suite.Assert().Equal(date(2024, time.February, 29), response.Data[1].OccurredOn)
	suite.Assert().Equal(date(2024, time.March, 31), response.Data[2].OccurredOn)

	// The group can be used to list all installments
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/entries?installmentGroup=%s", *response.Data[0].InstallmentGroupID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.EntryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)
}

func (suite *TestSuiteStandard) TestInstallmentsSingle() {
	response := suite.createInstallments(v1.InstallmentPlanEditable{Amount: 4999, Count: 1, Start: date(2024, time.February, 3)})
	suite.Require().Len(response.Data, 1)
	suite.Assert().Nil(response.Data[0].InstallmentGroupID)
	suite.Assert().Equal(0, response.Data[0].InstallmentTotal)
	suite.Assert().Equal(types.Money(4999), response.Data[0].Amount)
}

func (suite *TestSuiteStandard) TestInstallmentsCredit() {
	account := createCreditAccount(suite.T(), 10, 20)

	response := suite.createInstallments(v1.InstallmentPlanEditable{
		Amount: 1200,
		Count:  2,
		Start:  date(2024, time.November, 10),
		Template: v1.EntryEditable{
			AccountID:     &account.Data.ID,
			PaymentMethod: models.PaymentCredit,
		},
	})
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2024-12", response.Data[0].InvoicePeriod.String())
	suite.Assert().Equal("2025-01", response.Data[1].InvoicePeriod.String())

	invoices := getInvoices(suite.T(), account)
	suite.Require().Len(invoices, 2)
	suite.Assert().Equal(types.Money(600), invoices[0].Total)
	suite.Assert().Equal(types.Money(600), invoices[1].Total)
}

func (suite *TestSuiteStandard) TestInstallmentsCreateFails() {
	direct := createTestAccount(suite.T(), v1.AccountEditable{})
	missing := uuid.New()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "count": "three" }`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
		{"Zero installments", v1.InstallmentPlanEditable{Amount: 100}, http.StatusBadRequest},
		{"Too many installments", v1.InstallmentPlanEditable{Amount: 100000, Count: 361}, http.StatusBadRequest},
		{"Zero amount", v1.InstallmentPlanEditable{Count: 2}, http.StatusBadRequest},
		{"Negative amount", v1.InstallmentPlanEditable{Amount: -300, Count: 3}, http.StatusBadRequest},
		{"Less than a cent per installment", v1.InstallmentPlanEditable{Amount: 2, Count: 3}, http.StatusBadRequest},
		{"Credit without account", v1.InstallmentPlanEditable{Amount: 300, Count: 3, Template: v1.EntryEditable{PaymentMethod: models.PaymentCredit}}, http.StatusBadRequest},
		{"Credit on account without credit", v1.InstallmentPlanEditable{Amount: 300, Count: 3, Template: v1.EntryEditable{AccountID: &direct.Data.ID, PaymentMethod: models.PaymentCredit}}, http.StatusBadRequest},
		{"Non-existing account", v1.InstallmentPlanEditable{Amount: 300, Count: 3, Template: v1.EntryEditable{AccountID: &missing}}, http.StatusNotFound},
		{"Non-existing counterparty", v1.InstallmentPlanEditable{Amount: 300, Count: 3, Template: v1.EntryEditable{CounterpartyID: &missing}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_ = suite.createInstallments(tt.body, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestInstallmentsDelete() {
	response := suite.createInstallments(v1.InstallmentPlanEditable{Amount: 60000, Count: 6, Start: date(2024, time.March, 15)})
	suite.Require().Len(response.Data, 6)

	// Deleting a single installment keeps the others
	r := test.Request(suite.T(), http.MethodDelete, response.Data[5].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var deleted v1.EntryDeleteResponse
	test.DecodeResponse(suite.T(), &r, &deleted)
	suite.Assert().Equal([]uuid.UUID{response.Data[5].ID}, deleted.Data)

	// Deleting the group removes all remaining installments
	r = test.Request(suite.T(), http.MethodDelete, response.Data[0].Links.Self+"?scope=group", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &deleted)
	suite.Assert().Len(deleted.Data, 5)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/entries?installmentGroup=%s", *response.Data[0].InstallmentGroupID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.EntryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)
}
