package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	ll_uuid "github.com/ledgerline/backend/internal/uuid"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// RecurringRuleEditable represents all user configurable parameters
type RecurringRuleEditable struct {
	Amount         types.Money          `json:"amount" example:"15.99"`                                                                  // Amount of every entry
	Kind           models.EntryKind     `json:"kind" example:"expense" binding:"omitempty,oneof=expense income investment"`              // One of expense, income, investment. Defaults to expense.
	CategoryName   string               `json:"categoryName" example:"Streaming" default:""`                                             // Name of the category
	CategoryGroup  string               `json:"categoryGroup" example:"Leisure" default:""`                                              // Group of the category
	Description    string               `json:"description" example:"Video subscription" default:""`                                     // Description of every entry
	DayOfMonth     int                  `json:"dayOfMonth" example:"31" binding:"omitempty,min=1,max=31"`                                // Day of the month the entry is due on, clamped to the length of the month
	AccountID      *uuid.UUID           `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`                                // ID of the account
	PaymentMethod  models.PaymentMethod `json:"paymentMethod" example:"direct" binding:"omitempty,oneof=direct credit" default:"direct"` // One of direct, credit. Defaults to direct.
	CounterpartyID *uuid.UUID           `json:"counterpartyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`                           // ID of the counterparty for recurring debts
	IsDebt         bool                 `json:"isDebt" example:"false" default:"false"`                                                  // Are the entries tracked against the counterparty?
}

func (editable RecurringRuleEditable) model() models.RecurringRule {
	return models.RecurringRule{
		Amount:         editable.Amount,
		Kind:           editable.Kind,
		CategoryName:   editable.CategoryName,
		CategoryGroup:  editable.CategoryGroup,
		Description:    editable.Description,
		DayOfMonth:     editable.DayOfMonth,
		AccountID:      editable.AccountID,
		PaymentMethod:  editable.PaymentMethod,
		CounterpartyID: editable.CounterpartyID,
		IsDebt:         editable.IsDebt,
	}
}

// RecurringRuleCreate is the request body for new recurring rules
type RecurringRuleCreate struct {
	RecurringRuleEditable
	AlreadyPaid bool         `json:"alreadyPaid" example:"false" default:"false"` // Has the occurrence of the current month already been paid?
	FirstPeriod *types.Month `json:"firstPeriod" example:"2024-01"`               // First month to create an entry for. Must not be in the future.
}

type RecurringRuleLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/recurring-rules/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The recurring rule itself
	Entries  string `json:"entries" example:"https://example.com/api/v1/entries?recurringRule=3b1ea324-d438-4419-882a-2fc91d71772f"`     // Entries created by the rule
	Pause    string `json:"pause" example:"https://example.com/api/v1/recurring-rules/3b1ea324-d438-4419-882a-2fc91d71772f/pause"`       // Pauses the rule
	Activate string `json:"activate" example:"https://example.com/api/v1/recurring-rules/3b1ea324-d438-4419-882a-2fc91d71772f/activate"` // Reactivates the rule
}

type RecurringRule struct {
	models.DefaultModel
	RecurringRuleEditable
	Active              bool               `json:"active" example:"true"`                 // Is the rule active?
	LastProcessedPeriod types.Month        `json:"lastProcessedPeriod" example:"2024-05"` // Last month an entry was created for
	Links               RecurringRuleLinks `json:"links"`
}

func newRecurringRule(c *gin.Context, model models.RecurringRule) RecurringRule {
	url := c.GetString(string(models.DBContextURL))

	return RecurringRule{
		DefaultModel: model.DefaultModel,
		RecurringRuleEditable: RecurringRuleEditable{
			Amount:         model.Amount,
			Kind:           model.Kind,
			CategoryName:   model.CategoryName,
			CategoryGroup:  model.CategoryGroup,
			Description:    model.Description,
			DayOfMonth:     model.DayOfMonth,
			AccountID:      model.AccountID,
			PaymentMethod:  model.PaymentMethod,
			CounterpartyID: model.CounterpartyID,
			IsDebt:         model.IsDebt,
		},
		Active:              model.Active,
		LastProcessedPeriod: model.LastProcessedPeriod,
		Links: RecurringRuleLinks{
			Self:     fmt.Sprintf("%s/v1/recurring-rules/%s", url, model.ID),
			Entries:  fmt.Sprintf("%s/v1/entries?recurringRule=%s", url, model.ID),
			Pause:    fmt.Sprintf("%s/v1/recurring-rules/%s/pause", url, model.ID),
			Activate: fmt.Sprintf("%s/v1/recurring-rules/%s/activate", url, model.ID),
		},
	}
}

type RecurringRuleListResponse struct {
	Data  []RecurringRule `json:"data"`                                                          // List of recurring rules
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringRuleCreateResponse struct {
	Data  []RecurringRuleResponse `json:"data"`                                                          // List of the created recurring rules or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringRuleResponse struct {
	Data  *RecurringRule `json:"data"`                                                          // Data for the recurring rule
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringRuleQueryFilter struct {
	Account ll_uuid.UUID `form:"account"` // By ID of the account
	Active  bool         `form:"active"`  // Is the rule active?
}

func (f RecurringRuleQueryFilter) model(setFields []string) ledger.RuleFilter {
	filter := ledger.RuleFilter{
		AccountID: f.Account.Ptr(),
	}

	if slices.Contains(setFields, "Active") {
		active := f.Active
		filter.Active = &active
	}

	return filter
}

// CatchUp is the result of a catch-up run
type CatchUp struct {
	Emitted  []Entry              `json:"emitted"`  // Entries created by the run
	Warnings []ledger.RuleWarning `json:"warnings"` // Rules that could not be caught up
}

type CatchUpResponse struct {
	Data  *CatchUp `json:"data"`                                                                // The result of the run. Contains the entries created before an error occurred.
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

func newCatchUp(c *gin.Context, report ledger.CatchUpReport) CatchUp {
	warnings := make([]ledger.RuleWarning, 0, len(report.Warnings))
	warnings = append(warnings, report.Warnings...)

	return CatchUp{
		Emitted:  newEntries(c, report.Emitted),
		Warnings: warnings,
	}
}
