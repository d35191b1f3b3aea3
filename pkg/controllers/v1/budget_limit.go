package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/models"
)

// BudgetLimitEditable represents all user configurable parameters
type BudgetLimitEditable struct {
	CategoryGroup string      `json:"categoryGroup" example:"Food" default:""` // The category group the limit applies to
	LimitAmount   types.Money `json:"limitAmount" example:"400.00"`            // Maximum amount to spend in a month
}

func (editable BudgetLimitEditable) model() models.BudgetLimit {
	return models.BudgetLimit{
		CategoryGroup: editable.CategoryGroup,
		LimitAmount:   editable.LimitAmount,
	}
}

type BudgetLimitLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budget-limits/3b1ea324-d438-4419-882a-2fc91d71772f"` // The budget limit itself
}

type BudgetLimit struct {
	models.DefaultModel
	BudgetLimitEditable
	Links BudgetLimitLinks `json:"links"`
}

func newBudgetLimit(c *gin.Context, model models.BudgetLimit) BudgetLimit {
	url := c.GetString(string(models.DBContextURL))

	return BudgetLimit{
		DefaultModel: model.DefaultModel,
		BudgetLimitEditable: BudgetLimitEditable{
			CategoryGroup: model.CategoryGroup,
			LimitAmount:   model.LimitAmount,
		},
		Links: BudgetLimitLinks{
			Self: fmt.Sprintf("%s/v1/budget-limits/%s", url, model.ID),
		},
	}
}

type BudgetLimitListResponse struct {
	Data  []BudgetLimit `json:"data"`                                                          // List of budget limits
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetLimitCreateResponse struct {
	Data  []BudgetLimitResponse `json:"data"`                                                          // List of the created budget limits or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *BudgetLimitCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, BudgetLimitResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetLimitResponse struct {
	Data  *BudgetLimit `json:"data"`                                                          // Data for the budget limit
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterBudgetLimitRoutes registers the routes for budget limits with
// the RouterGroup that is passed.
func RegisterBudgetLimitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetLimitList)
		r.GET("", GetBudgetLimits)
		r.POST("", CreateBudgetLimits)
	}

	// Budget limit with ID
	{
		r.OPTIONS("/:id", OptionsBudgetLimitDetail)
		r.GET("/:id", GetBudgetLimit)
		r.PATCH("/:id", UpdateBudgetLimit)
		r.DELETE("/:id", DeleteBudgetLimit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Limits
// @Success		204
// @Router			/v1/budget-limits [options]
func OptionsBudgetLimitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Limits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budget-limits/{id} [options]
func OptionsBudgetLimitDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetLimit{})
}

// @Summary		Create budget limits
// @Description	Creates new budget limits. There can only be one limit per category group.
// @Tags			Budget Limits
// @Produce		json
// @Success		201		{object}	BudgetLimitCreateResponse
// @Failure		400		{object}	BudgetLimitCreateResponse
// @Failure		500		{object}	BudgetLimitCreateResponse
// @Param			limits	body		[]BudgetLimitEditable	true	"Budget limits"
// @Router			/v1/budget-limits [post]
func CreateBudgetLimits(c *gin.Context) {
	var editables []BudgetLimitEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetLimitCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetLimitCreateResponse{}

	for _, editable := range editables {
		limit := editable.model()

		err = models.DB.Create(&limit).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudgetLimit(c, limit)
		r.Data = append(r.Data, BudgetLimitResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get budget limits
// @Description	Returns all budget limits, ordered by category group
// @Tags			Budget Limits
// @Produce		json
// @Success		200	{object}	BudgetLimitListResponse
// @Failure		500	{object}	BudgetLimitListResponse
// @Router			/v1/budget-limits [get]
func GetBudgetLimits(c *gin.Context) {
	var limits []models.BudgetLimit
	err := models.DB.Order("category_group ASC").Find(&limits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitListResponse{
			Error: &s,
		})
		return
	}

	data := make([]BudgetLimit, 0, len(limits))
	for _, limit := range limits {
		data = append(data, newBudgetLimit(c, limit))
	}

	c.JSON(http.StatusOK, BudgetLimitListResponse{Data: data})
}

// @Summary		Get budget limit
// @Description	Returns a specific budget limit
// @Tags			Budget Limits
// @Produce		json
// @Success		200	{object}	BudgetLimitResponse
// @Failure		400	{object}	BudgetLimitResponse
// @Failure		404	{object}	BudgetLimitResponse
// @Failure		500	{object}	BudgetLimitResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budget-limits/{id} [get]
func GetBudgetLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	data := newBudgetLimit(c, limit)
	c.JSON(http.StatusOK, BudgetLimitResponse{Data: &data})
}

// @Summary		Update budget limit
// @Description	Updates a budget limit. Only values to be updated need to be specified.
// @Tags			Budget Limits
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetLimitResponse
// @Failure		400		{object}	BudgetLimitResponse
// @Failure		404		{object}	BudgetLimitResponse
// @Failure		500		{object}	BudgetLimitResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			limit	body		BudgetLimitEditable	true	"Budget limit"
// @Router			/v1/budget-limits/{id} [patch]
func UpdateBudgetLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetLimitEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	var data BudgetLimitEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	copyFields(&limit, data.model(), updateFields)
	err = models.DB.Save(&limit).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetLimitResponse{
			Error: &s,
		})
		return
	}

	r := newBudgetLimit(c, limit)
	c.JSON(http.StatusOK, BudgetLimitResponse{Data: &r})
}

// @Summary		Delete budget limit
// @Description	Deletes a budget limit
// @Tags			Budget Limits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budget-limits/{id} [delete]
func DeleteBudgetLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&limit).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
