package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	ll_uuid "github.com/ledgerline/backend/internal/uuid"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// EntryEditable represents all user configurable parameters
type EntryEditable struct {
	Amount          types.Money          `json:"amount" example:"14.03"`                                                                  // The amount, always positive
	Kind            models.EntryKind     `json:"kind" example:"expense" binding:"omitempty,oneof=expense income investment"`              // One of expense, income, investment. Defaults to expense.
	CategoryName    string               `json:"categoryName" example:"Groceries" default:""`                                             // Name of the category
	CategoryGroup   string               `json:"categoryGroup" example:"Food" default:""`                                                 // Group of the category, used for budget limits
	Description     string               `json:"description" example:"Weekly shopping" default:""`                                        // Description of the entry
	OccurredOn      time.Time            `json:"occurredOn" example:"2024-06-01T00:00:00Z"`                                               // Day the entry occurred on. Defaults to today.
	AccountID       *uuid.UUID           `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`                                // ID of the account
	CounterpartyID  *uuid.UUID           `json:"counterpartyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`                           // ID of the counterparty for debts
	AssetID         *uuid.UUID           `json:"assetId" example:"bc6a1a53-3c5b-4cd7-8a3c-aa2b1c7c8a6e"`                                  // ID of the asset an investment contributes to
	IsDebt          bool                 `json:"isDebt" example:"false" default:"false"`                                                  // Is the entry tracked against the counterparty?
	DebtSettled     bool                 `json:"debtSettled" example:"false" default:"false"`                                             // Is the debt settled?
	IsFutureReceipt bool                 `json:"isFutureReceipt" example:"false" default:"false"`                                         // Is the income not realized yet?
	IsTransfer      bool                 `json:"isTransfer" example:"false" default:"false"`                                              // Is the entry a transfer between accounts?
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" example:"credit" binding:"omitempty,oneof=direct credit" default:"direct"` // One of direct, credit. Defaults to direct.
}

func (editable EntryEditable) model() models.Entry {
	return models.Entry{
		Amount:          editable.Amount,
		Kind:            editable.Kind,
		CategoryName:    editable.CategoryName,
		CategoryGroup:   editable.CategoryGroup,
		Description:     editable.Description,
		OccurredOn:      editable.OccurredOn,
		AccountID:       editable.AccountID,
		CounterpartyID:  editable.CounterpartyID,
		AssetID:         editable.AssetID,
		IsDebt:          editable.IsDebt,
		DebtSettled:     editable.DebtSettled,
		IsFutureReceipt: editable.IsFutureReceipt,
		IsTransfer:      editable.IsTransfer,
		PaymentMethod:   editable.PaymentMethod,
	}
}

type EntryLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/entries/3b1ea324-d438-4419-882a-2fc91d71772f"`                   // The entry itself
	ToggleDebt string `json:"toggleDebt" example:"https://example.com/api/v1/entries/3b1ea324-d438-4419-882a-2fc91d71772f/toggle-debt"` // Settles or reopens the debt
}

type Entry struct {
	models.DefaultModel
	EntryEditable
	Links EntryLinks `json:"links"`

	// These fields are maintained by the ledger
	InvoicePeriod      *types.Month `json:"invoicePeriod" example:"2024-07"`                                // Invoice period of credit entries
	IsInvoicePayment   bool         `json:"isInvoicePayment" example:"false"`                               // Is the entry the payment of an invoice?
	IsInvoiceSettled   bool         `json:"isInvoiceSettled" example:"false"`                               // Has the credit entry been paid with an invoice?
	RelatedEntryIDs    []uuid.UUID  `json:"relatedEntryIds"`                                                // Entries settled by this invoice payment
	InstallmentGroupID *string      `json:"installmentGroupId" example:"01HZX8G3Q8N2W0Y4S6C1V5T7RB"`        // Shared by all installments of a purchase
	InstallmentIndex   int          `json:"installmentIndex" example:"2"`                                   // Number of the installment, starting at 1
	InstallmentTotal   int          `json:"installmentTotal" example:"6"`                                   // Number of installments of the purchase
	RecurringRuleID    *uuid.UUID   `json:"recurringRuleId" example:"0f2b7bc4-4a8b-4cbb-9f3e-5c1b0b6e1e5e"` // The recurring rule that created the entry
}

func newEntry(c *gin.Context, model models.Entry) Entry {
	url := c.GetString(string(models.DBContextURL))

	related := make([]uuid.UUID, 0, len(model.RelatedEntryIDs))
	related = append(related, model.RelatedEntryIDs...)

	return Entry{
		DefaultModel: model.DefaultModel,
		EntryEditable: EntryEditable{
			Amount:          model.Amount,
			Kind:            model.Kind,
			CategoryName:    model.CategoryName,
			CategoryGroup:   model.CategoryGroup,
			Description:     model.Description,
			OccurredOn:      model.OccurredOn,
			AccountID:       model.AccountID,
			CounterpartyID:  model.CounterpartyID,
			AssetID:         model.AssetID,
			IsDebt:          model.IsDebt,
			DebtSettled:     model.DebtSettled,
			IsFutureReceipt: model.IsFutureReceipt,
			IsTransfer:      model.IsTransfer,
			PaymentMethod:   model.PaymentMethod,
		},
		Links: EntryLinks{
			Self:       fmt.Sprintf("%s/v1/entries/%s", url, model.ID),
			ToggleDebt: fmt.Sprintf("%s/v1/entries/%s/toggle-debt", url, model.ID),
		},
		InvoicePeriod:      model.InvoicePeriod,
		IsInvoicePayment:   model.IsInvoicePayment,
		IsInvoiceSettled:   model.IsInvoiceSettled,
		RelatedEntryIDs:    related,
		InstallmentGroupID: model.InstallmentGroupID,
		InstallmentIndex:   model.InstallmentIndex,
		InstallmentTotal:   model.InstallmentTotal,
		RecurringRuleID:    model.RecurringRuleID,
	}
}

func newEntries(c *gin.Context, entries []models.Entry) []Entry {
	data := make([]Entry, 0, len(entries))
	for _, model := range entries {
		data = append(data, newEntry(c, model))
	}
	return data
}

type EntryListResponse struct {
	Data       []Entry     `json:"data"`                                                          // List of entries
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EntryCreateResponse struct {
	Data  []EntryResponse `json:"data"`                                                          // List of the created entries
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EntryResponse struct {
	Data  *Entry  `json:"data"`                                                          // Data for the entry
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EntryDeleteResponse struct {
	Data  []uuid.UUID `json:"data"`                                                          // IDs of all deleted entries
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EntryQueryFilter struct {
	Account          ll_uuid.UUID         `form:"account"`                                         // By ID of the account
	Counterparty     ll_uuid.UUID         `form:"counterparty"`                                    // By ID of the counterparty
	Asset            ll_uuid.UUID         `form:"asset"`                                           // By ID of the asset
	RecurringRule    ll_uuid.UUID         `form:"recurringRule"`                                   // By ID of the recurring rule
	InstallmentGroup string               `form:"installmentGroup"`                                // By installment group
	InvoicePeriod    types.Month          `form:"invoicePeriod"`                                   // By invoice period
	Kind             models.EntryKind     `form:"kind"`                                            // By kind
	PaymentMethod    models.PaymentMethod `form:"paymentMethod"`                                   // By payment method
	InvoiceSettled   bool                 `form:"invoiceSettled"`                                  // Is the credit entry settled?
	FromDate         time.Time            `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Entries on and after this day
	UntilDate        time.Time            `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Entries on and before this day
	CategoryGroup    string               `form:"categoryGroup"`                                   // By category group
	Description      string               `form:"description"`                                     // By glob pattern for the description, e.g. "*market*"
	Offset           uint                 `form:"offset"`                                          // The offset of the first entry returned. Defaults to 0.
	Limit            int                  `form:"limit"`                                           // Maximum number of entries to return. Defaults to 50.
}

func (f EntryQueryFilter) model(setFields []string) ledger.EntryFilter {
	filter := ledger.EntryFilter{
		AccountID:       f.Account.Ptr(),
		CounterpartyID:  f.Counterparty.Ptr(),
		AssetID:         f.Asset.Ptr(),
		RecurringRuleID: f.RecurringRule.Ptr(),
		Kind:            f.Kind,
		PaymentMethod:   f.PaymentMethod,
		FromDate:        f.FromDate,
		UntilDate:       f.UntilDate,
		CategoryGroup:   f.CategoryGroup,
		Description:     f.Description,
	}

	if f.InstallmentGroup != "" {
		group := f.InstallmentGroup
		filter.InstallmentGroupID = &group
	}

	if !f.InvoicePeriod.IsZero() {
		period := f.InvoicePeriod
		filter.InvoicePeriod = &period
	}

	if slices.Contains(setFields, "InvoiceSettled") {
		settled := f.InvoiceSettled
		filter.InvoiceSettled = &settled
	}

	return filter
}
