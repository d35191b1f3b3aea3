package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestBudgetLimitsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestBudgetLimitsDBClosed() {
	suite.CloseDB()

	createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-limits", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

// TestBudgetLimitsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetLimitsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Budget Limits endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Budget Limit with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Budget Limit exists", createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/budget-limits", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetLimitsCreate() {
	b := createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{CategoryGroup: " Food ", LimitAmount: 40000})
	suite.Assert().Equal("Food", b.Data.CategoryGroup)
	suite.Assert().Equal(types.Money(40000), b.Data.LimitAmount)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/budget-limits/%s", b.Data.ID), b.Data.Links.Self)

	r := test.Request(suite.T(), http.MethodGet, b.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `[{ "categoryGroup": 2 }]`, http.StatusBadRequest},
		{"Duplicate group", []v1.BudgetLimitEditable{{CategoryGroup: "Food", LimitAmount: 100}}, http.StatusBadRequest},
		{"Empty group", []v1.BudgetLimitEditable{{LimitAmount: 100}}, http.StatusBadRequest},
		{"Zero limit", []v1.BudgetLimitEditable{{CategoryGroup: "Leisure"}}, http.StatusBadRequest},
		{"Negative limit", []v1.BudgetLimitEditable{{CategoryGroup: "Leisure", LimitAmount: -100}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-limits", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetLimitsUpdate() {
	b := createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{CategoryGroup: "Food"})

	r := test.Request(suite.T(), http.MethodPatch, b.Data.Links.Self, `{ "limitAmount": "550.00" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetLimitResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(types.Money(55000), response.Data.LimitAmount)
	suite.Assert().Equal("Food", response.Data.CategoryGroup)

	r = test.Request(suite.T(), http.MethodPatch, b.Data.Links.Self, `{ "limitAmount": "0" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budget-limits/%s", uuid.New()), `{ "limitAmount": "1.00" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetLimitsDelete() {
	b := createTestBudgetLimit(suite.T(), v1.BudgetLimitEditable{})

	r := test.Request(suite.T(), http.MethodDelete, b.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, b.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
