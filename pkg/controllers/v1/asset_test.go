package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	v1 "github.com/ledgerline/backend/pkg/controllers/v1"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestAssetsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAssetsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestAsset(t, v1.AssetEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/assets", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.AssetListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
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

// TestAssetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAssetsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Assets endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Asset with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Asset exists", createTestAsset(suite.T(), v1.AssetEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/assets", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestAssetsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestAssetsGetSingle() {
	a := createTestAsset(suite.T(), v1.AssetEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Asset", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Asset with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH No Asset with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE No Asset with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/assets/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAssetsCreate() {
	a := createTestAsset(suite.T(), v1.AssetEditable{Name: "Index fund", CurrentValue: 131540})
	suite.Assert().Equal(types.Money(131540), a.Data.CurrentValue)
	suite.Assert().Equal(types.Money(0), a.Data.Invested, "New assets must not have any investments")
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/entries?asset=%s", a.Data.ID), a.Data.Links.Entries)

	// Investments are only tracked through entries
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/assets", `[{ "name": "Bonds", "invested": "100.00" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var created v1.AssetCreateResponse
	test.DecodeResponse(suite.T(), &r, &created)
	suite.Assert().Equal(types.Money(0), created.Data[0].Data.Invested)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/assets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.AssetListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 2)
	suite.Assert().Equal("Bonds", list.Data[0].Name)
}

func (suite *TestSuiteStandard) TestAssetsCreateFails() {
	_ = createTestAsset(suite.T(), v1.AssetEditable{Name: "Index fund"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `[{ "name": 2 }]`, http.StatusBadRequest},
		{"Duplicate name", []v1.AssetEditable{{Name: "Index fund"}}, http.StatusBadRequest},
		{"Empty name", []v1.AssetEditable{{}}, http.StatusBadRequest},
		{"Negative value", []v1.AssetEditable{{Name: "Bonds", CurrentValue: -1}}, http.StatusBadRequest},
		{"Sub-cent value", `[{ "name": "Bonds", "currentValue": "1.001" }]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/assets", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAssetsUpdate() {
	a := createTestAsset(suite.T(), v1.AssetEditable{Name: "Index fund", CurrentValue: 10000})
	_ = createTestEntry(suite.T(), v1.EntryEditable{Amount: 5000, Kind: models.KindInvestment, AssetID: &a.Data.ID})

	r := test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "currentValue": "123.45" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AssetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(types.Money(12345), response.Data.CurrentValue)
	suite.Assert().Equal("Index fund", response.Data.Name)
	suite.Assert().Equal(types.Money(5000), response.Data.Invested, "Updates must not change the invested amount")

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "currentValue": "-1.00" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "name": "" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAssetsDelete() {
	a := createTestAsset(suite.T(), v1.AssetEditable{})
	e := createTestEntry(suite.T(), v1.EntryEditable{Amount: 5000, Kind: models.KindInvestment, AssetID: &a.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The investment is kept without an asset
	r = test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var entry v1.EntryResponse
	test.DecodeResponse(suite.T(), &r, &entry)
	suite.Assert().Nil(entry.Data.AssetID)
}
