package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/ledger"
)

// InstallmentPlanEditable describes a purchase that is paid in installments
type InstallmentPlanEditable struct {
	Amount   types.Money   `json:"amount" example:"100.00" binding:"required"`         // Nominal amount of the purchase
	Count    int           `json:"count" example:"3" binding:"required,min=1,max=360"` // Number of installments
	Start    time.Time     `json:"start" example:"2024-01-31T00:00:00Z"`               // Date of the first installment. Defaults to today.
	Template EntryEditable `json:"template"`                                           // Values shared by all installments
}

func (editable InstallmentPlanEditable) model(today time.Time) ledger.InstallmentPlan {
	start := editable.Start
	if start.IsZero() {
		start = today
	}

	return ledger.InstallmentPlan{
		Amount:   editable.Amount,
		Count:    editable.Count,
		Start:    start,
		Template: editable.Template.model(),
	}
}

// RegisterInstallmentRoutes registers the routes for installment plans with
// the RouterGroup that is passed.
func RegisterInstallmentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsInstallments)
	r.POST("", CreateInstallments)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/installments [options]
func OptionsInstallments(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create installments
// @Description	Splits a purchase into monthly installments that sum up to exactly its amount
// @Tags			Installments
// @Produce		json
// @Success		201		{object}	EntryListResponse
// @Failure		400		{object}	EntryListResponse
// @Failure		404		{object}	EntryListResponse
// @Failure		500		{object}	EntryListResponse
// @Param			plan	body		InstallmentPlanEditable	true	"Installment plan"
// @Router			/v1/installments [post]
func CreateInstallments(c *gin.Context) {
	var editable InstallmentPlanEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &s,
		})
		return
	}

	l := engine()
	entries, err := l.CreateInstallments(c.Request.Context(), editable.model(l.Today()))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, EntryListResponse{Data: newEntries(c, entries)})
}
