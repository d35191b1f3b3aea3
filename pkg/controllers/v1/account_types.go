package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name        string      `json:"name" example:"Checking" default:""`                 // Name of the account
	IsDefault   bool        `json:"isDefault" example:"true" default:"false"`           // Is the account the default account? The first account always is.
	HasCredit   bool        `json:"hasCredit" example:"false" default:"false"`          // Does the account have a credit card?
	ClosingDay  int         `json:"closingDay" example:"10" binding:"omitempty,max=31"` // Day of the month the invoice closes. Charges on or after it go to the next invoice.
	DueDay      int         `json:"dueDay" example:"20" binding:"omitempty,max=31"`     // Day of the month the invoice is due
	CreditLimit types.Money `json:"creditLimit" example:"2500.00"`                      // The credit limit
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:        editable.Name,
		IsDefault:   editable.IsDefault,
		HasCredit:   editable.HasCredit,
		ClosingDay:  editable.ClosingDay,
		DueDay:      editable.DueDay,
		CreditLimit: editable.CreditLimit,
	}
}

type AccountLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`              // The account itself
	Entries  string `json:"entries" example:"https://example.com/api/v1/entries?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // Entries of the account
	Invoices string `json:"invoices" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/invoices"` // Invoices of the credit card
	Default  string `json:"default" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/default"`   // Makes the account the default account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:        model.Name,
			IsDefault:   model.IsDefault,
			HasCredit:   model.HasCredit,
			ClosingDay:  model.ClosingDay,
			DueDay:      model.DueDay,
			CreditLimit: model.CreditLimit,
		},
		Links: AccountLinks{
			Self:     fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Entries:  fmt.Sprintf("%s/v1/entries?account=%s", url, model.ID),
			Invoices: fmt.Sprintf("%s/v1/accounts/%s/invoices", url, model.ID),
			Default:  fmt.Sprintf("%s/v1/accounts/%s/default", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type InvoiceListResponse struct {
	Data  []ledger.Invoice `json:"data"`                                                          // Invoices of the account, ordered by period
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InvoicePaymentEditable holds the optional parameters of an invoice payment
type InvoicePaymentEditable struct {
	EntryIDs      []uuid.UUID `json:"entryIds"`                                                     // Entries to settle. Defaults to all unsettled entries of the invoice.
	FromAccountID *uuid.UUID  `json:"fromAccountId" example:"0a4a7d65-a2b7-4a1e-8cfa-7d7c4c0fb8e8"` // Account the payment is made from. Defaults to the credit account.
	Date          time.Time   `json:"date" example:"2024-06-20T00:00:00Z"`                          // Date of the payment. Defaults to today.
}

func (editable InvoicePaymentEditable) model(uri URIInvoice) ledger.InvoicePayment {
	return ledger.InvoicePayment{
		AccountID:     uri.ID.UUID,
		Period:        uri.Period,
		EntryIDs:      editable.EntryIDs,
		FromAccountID: editable.FromAccountID,
		Date:          editable.Date,
	}
}
