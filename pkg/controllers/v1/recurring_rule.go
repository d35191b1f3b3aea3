package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
)

// RegisterRecurringRuleRoutes registers the routes for recurring rules with
// the RouterGroup that is passed.
func RegisterRecurringRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringRuleList)
		r.GET("", GetRecurringRules)
		r.POST("", CreateRecurringRules)
	}

	// Recurring rule with ID
	{
		r.OPTIONS("/:id", OptionsRecurringRuleDetail)
		r.GET("/:id", GetRecurringRule)
		r.PATCH("/:id", UpdateRecurringRule)
		r.DELETE("/:id", DeleteRecurringRule)
		r.OPTIONS("/:id/pause", OptionsRecurringRuleState)
		r.POST("/:id/pause", PauseRecurringRule)
		r.OPTIONS("/:id/activate", OptionsRecurringRuleState)
		r.POST("/:id/activate", ActivateRecurringRule)
	}
}

// RegisterCatchUpRoutes registers the routes for catch-up runs with
// the RouterGroup that is passed.
func RegisterCatchUpRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCatchUp)
	r.POST("", CatchUpRecurringRules)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Rules
// @Success		204
// @Router			/v1/recurring-rules [options]
func OptionsRecurringRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Rules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id} [options]
func OptionsRecurringRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringRule{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Rules
// @Success		204
// @Param			id	path	URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id}/pause [options]
// @Router			/v1/recurring-rules/{id}/activate [options]
func OptionsRecurringRuleState(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Rules
// @Success		204
// @Router			/v1/catch-up [options]
func OptionsCatchUp(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create recurring rules
// @Description	Creates new recurring rules. Unless alreadyPaid or firstPeriod are set, the next catch-up creates the entry for the current month.
// @Tags			Recurring Rules
// @Produce		json
// @Success		201		{object}	RecurringRuleCreateResponse
// @Failure		400		{object}	RecurringRuleCreateResponse
// @Failure		404		{object}	RecurringRuleCreateResponse
// @Failure		500		{object}	RecurringRuleCreateResponse
// @Param			rules	body		[]RecurringRuleCreate	true	"Recurring rules"
// @Router			/v1/recurring-rules [post]
func CreateRecurringRules(c *gin.Context) {
	var creates []RecurringRuleCreate

	// Bind data and return error if not possible
	err := httputil.BindData(c, &creates)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringRuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringRuleCreateResponse{}

	l := engine()
	for _, create := range creates {
		rule, err := l.CreateRule(c.Request.Context(), ledger.NewRule{
			Rule:        create.model(),
			AlreadyPaid: create.AlreadyPaid,
			FirstPeriod: create.FirstPeriod,
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringRule(c, rule)
		r.Data = append(r.Data, RecurringRuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring rules
// @Description	Returns a list of recurring rules
// @Tags			Recurring Rules
// @Produce		json
// @Success		200		{object}	RecurringRuleListResponse
// @Failure		400		{object}	RecurringRuleListResponse
// @Failure		500		{object}	RecurringRuleListResponse
// @Param			account	query		string	false	"Filter by account ID"
// @Param			active	query		bool	false	"Is the rule active?"
// @Router			/v1/recurring-rules [get]
func GetRecurringRules(c *gin.Context) {
	var filter RecurringRuleQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecurringRuleListResponse{
			Error: &s,
		})
		return
	}

	setFields := httputil.GetURLFields(c.Request.URL, filter)

	rules, err := engine().Store().ListRules(c.Request.Context(), filter.model(setFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleListResponse{
			Error: &s,
		})
		return
	}

	data := make([]RecurringRule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newRecurringRule(c, rule))
	}

	c.JSON(http.StatusOK, RecurringRuleListResponse{Data: data})
}

// @Summary		Get recurring rule
// @Description	Returns a specific recurring rule
// @Tags			Recurring Rules
// @Produce		json
// @Success		200	{object}	RecurringRuleResponse
// @Failure		400	{object}	RecurringRuleResponse
// @Failure		404	{object}	RecurringRuleResponse
// @Failure		500	{object}	RecurringRuleResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id} [get]
func GetRecurringRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	rule, err := engine().Store().GetRule(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringRule(c, rule)
	c.JSON(http.StatusOK, RecurringRuleResponse{Data: &data})
}

// @Summary		Update recurring rule
// @Description	Updates an existing recurring rule. Only values to be updated need to be specified. Entries that have already been created are not changed.
// @Tags			Recurring Rules
// @Accept			json
// @Produce		json
// @Success		200		{object}	RecurringRuleResponse
// @Failure		400		{object}	RecurringRuleResponse
// @Failure		404		{object}	RecurringRuleResponse
// @Failure		500		{object}	RecurringRuleResponse
// @Param			id		path		URIID					true	"ID formatted as string"
// @Param			rule	body		RecurringRuleEditable	true	"Recurring rule"
// @Router			/v1/recurring-rules/{id} [patch]
func UpdateRecurringRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringRuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	var data RecurringRuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	rule, err := engine().UpdateRule(c.Request.Context(), uri.ID.UUID, func(r *models.RecurringRule) {
		copyFields(r, data.model(), updateFields)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	r := newRecurringRule(c, rule)
	c.JSON(http.StatusOK, RecurringRuleResponse{Data: &r})
}

// @Summary		Delete recurring rule
// @Description	Deletes a recurring rule. Entries it created are kept.
// @Tags			Recurring Rules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id} [delete]
func DeleteRecurringRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = engine().DeleteRule(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Pause recurring rule
// @Description	Pauses a recurring rule. No entries are created for it until it is activated again.
// @Tags			Recurring Rules
// @Produce		json
// @Success		200	{object}	RecurringRuleResponse
// @Failure		400	{object}	RecurringRuleResponse
// @Failure		404	{object}	RecurringRuleResponse
// @Failure		500	{object}	RecurringRuleResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id}/pause [post]
func PauseRecurringRule(c *gin.Context) {
	setRecurringRuleActive(c, false)
}

// @Summary		Activate recurring rule
// @Description	Activates a paused recurring rule. Months that passed while the rule was paused are skipped.
// @Tags			Recurring Rules
// @Produce		json
// @Success		200	{object}	RecurringRuleResponse
// @Failure		400	{object}	RecurringRuleResponse
// @Failure		404	{object}	RecurringRuleResponse
// @Failure		500	{object}	RecurringRuleResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/recurring-rules/{id}/activate [post]
func ActivateRecurringRule(c *gin.Context) {
	setRecurringRuleActive(c, true)
}

func setRecurringRuleActive(c *gin.Context, active bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	rule, err := engine().SetRuleActive(c.Request.Context(), uri.ID.UUID, active)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRuleResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringRule(c, rule)
	c.JSON(http.StatusOK, RecurringRuleResponse{Data: &data})
}

// @Summary		Catch up recurring rules
// @Description	Creates the entries of all active recurring rules that are due today or earlier. Running it again does not create duplicates.
// @Tags			Recurring Rules
// @Produce		json
// @Success		200	{object}	CatchUpResponse
// @Failure		500	{object}	CatchUpResponse
// @Router			/v1/catch-up [post]
func CatchUpRecurringRules(c *gin.Context) {
	l := engine()

	report, err := l.CatchUp(c.Request.Context(), l.Today())
	data := newCatchUp(c, report)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CatchUpResponse{
			Data:  &data,
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CatchUpResponse{Data: &data})
}
