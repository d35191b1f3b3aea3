package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts       string `json:"accounts" example:"https://example.com/api/v1/accounts"`              // URL of Account collection endpoint
	Assets         string `json:"assets" example:"https://example.com/api/v1/assets"`                  // URL of Asset collection endpoint
	BudgetLimits   string `json:"budgetLimits" example:"https://example.com/api/v1/budget-limits"`     // URL of Budget Limit collection endpoint
	CatchUp        string `json:"catchUp" example:"https://example.com/api/v1/catch-up"`               // URL of the catch-up endpoint for recurring rules
	Counterparties string `json:"counterparties" example:"https://example.com/api/v1/counterparties"`  // URL of Counterparty collection endpoint
	Entries        string `json:"entries" example:"https://example.com/api/v1/entries"`                // URL of Entry collection endpoint
	Installments   string `json:"installments" example:"https://example.com/api/v1/installments"`      // URL of the installment plan endpoint
	RecurringRules string `json:"recurringRules" example:"https://example.com/api/v1/recurring-rules"` // URL of Recurring Rule collection endpoint
	Summary        string `json:"summary" example:"https://example.com/api/v1/summary"`                // URL of the summary endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:       url + "/v1/accounts",
			Assets:         url + "/v1/assets",
			BudgetLimits:   url + "/v1/budget-limits",
			CatchUp:        url + "/v1/catch-up",
			Counterparties: url + "/v1/counterparties",
			Entries:        url + "/v1/entries",
			Installments:   url + "/v1/installments",
			RecurringRules: url + "/v1/recurring-rules",
			Summary:        url + "/v1/summary",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
