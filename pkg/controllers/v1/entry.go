package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// RegisterEntryRoutes registers the routes for entries with
// the RouterGroup that is passed.
func RegisterEntryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEntryList)
		r.GET("", GetEntries)
		r.POST("", CreateEntries)
	}

	// Entry with ID
	{
		r.OPTIONS("/:id", OptionsEntryDetail)
		r.GET("/:id", GetEntry)
		r.PATCH("/:id", UpdateEntry)
		r.DELETE("/:id", DeleteEntry)
		r.OPTIONS("/:id/toggle-debt", OptionsEntryToggleDebt)
		r.POST("/:id/toggle-debt", ToggleEntryDebt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Router			/v1/entries [options]
func OptionsEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/entries/{id} [options]
func OptionsEntryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Entry{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Param			id	path	URIID	true	"ID formatted as string"
// @Router			/v1/entries/{id}/toggle-debt [options]
func OptionsEntryToggleDebt(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create entries
// @Description	Creates entries. Either all entries are created or none. Credit entries are assigned to their invoice period.
// @Tags			Entries
// @Produce		json
// @Success		201		{object}	EntryCreateResponse
// @Failure		400		{object}	EntryCreateResponse
// @Failure		404		{object}	EntryCreateResponse
// @Failure		500		{object}	EntryCreateResponse
// @Param			entries	body		[]EntryEditable	true	"Entries"
// @Router			/v1/entries [post]
func CreateEntries(c *gin.Context) {
	var editables []EntryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryCreateResponse{
			Error: &e,
		})
		return
	}

	entries := make([]models.Entry, 0, len(editables))
	for _, editable := range editables {
		entries = append(entries, editable.model())
	}

	created, err := engine().CreateEntries(c.Request.Context(), entries)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryCreateResponse{
			Error: &e,
		})
		return
	}

	r := EntryCreateResponse{Data: make([]EntryResponse, 0, len(created))}
	for _, entry := range created {
		data := newEntry(c, entry)
		r.Data = append(r.Data, EntryResponse{Data: &data})
	}

	c.JSON(http.StatusCreated, r)
}

// @Summary		Get entries
// @Description	Returns a list of entries, ordered by date
// @Tags			Entries
// @Produce		json
// @Success		200	{object}	EntryListResponse
// @Failure		400	{object}	EntryListResponse
// @Failure		500	{object}	EntryListResponse
// @Router			/v1/entries [get]
// @Param			account				query	string	false	"Filter by account ID"
// @Param			counterparty		query	string	false	"Filter by counterparty ID"
// @Param			asset				query	string	false	"Filter by asset ID"
// @Param			recurringRule		query	string	false	"Filter by recurring rule ID"
// @Param			installmentGroup	query	string	false	"Filter by installment group"
// @Param			invoicePeriod		query	string	false	"Filter by invoice period, YYYY-MM"
// @Param			kind				query	string	false	"Filter by kind"
// @Param			paymentMethod		query	string	false	"Filter by payment method"
// @Param			invoiceSettled		query	bool	false	"Is the credit entry settled?"
// @Param			fromDate			query	string	false	"Entries on and after this day, YYYY-MM-DD"
// @Param			untilDate			query	string	false	"Entries on and before this day, YYYY-MM-DD"
// @Param			categoryGroup		query	string	false	"Filter by category group"
// @Param			description			query	string	false	"Glob pattern for the description"
// @Param			offset				query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetEntries(c *gin.Context) {
	var filter EntryQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, EntryListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	setFields := httputil.GetURLFields(c.Request.URL, filter)
	query := filter.model(setFields)

	s := engine().Store()
	all, err := s.ListEntries(c.Request.Context(), query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &e,
		})
		return
	}

	// Default to 50 entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	query.Offset = filter.Offset
	query.Limit = limit
	if limit <= 0 {
		// Limits of 0 or less return all entries
		query.Limit = 0
	}

	entries, err := s.ListEntries(c.Request.Context(), query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &e,
		})
		return
	}

	data := newEntries(c, entries)
	c.JSON(http.StatusOK, EntryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(all)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get entry
// @Description	Returns a specific entry
// @Tags			Entries
// @Produce		json
// @Success		200	{object}	EntryResponse
// @Failure		400	{object}	EntryResponse
// @Failure		404	{object}	EntryResponse
// @Failure		500	{object}	EntryResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/entries/{id} [get]
func GetEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	entry, err := engine().Store().GetEntry(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	data := newEntry(c, entry)
	c.JSON(http.StatusOK, EntryResponse{Data: &data})
}

// @Summary		Update entry
// @Description	Updates an existing entry. Only values to be updated need to be specified. The invoice period and asset contributions are updated accordingly.
// @Tags			Entries
// @Accept			json
// @Produce		json
// @Success		200		{object}	EntryResponse
// @Failure		400		{object}	EntryResponse
// @Failure		404		{object}	EntryResponse
// @Failure		409		{object}	EntryResponse
// @Failure		500		{object}	EntryResponse
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			entry	body		EntryEditable	true	"Entry"
// @Router			/v1/entries/{id} [patch]
func UpdateEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EntryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	var data EntryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	entry, err := engine().UpdateEntry(c.Request.Context(), uri.ID.UUID, func(e *models.Entry) {
		copyFields(e, data.model(), updateFields)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	r := newEntry(c, entry)
	c.JSON(http.StatusOK, EntryResponse{Data: &r})
}

// @Summary		Delete entry
// @Description	Deletes an entry and reverses everything derived from it. With scope "group", all installments of the entry's purchase are deleted.
// @Tags			Entries
// @Produce		json
// @Success		200		{object}	EntryDeleteResponse
// @Failure		400		{object}	EntryDeleteResponse
// @Failure		404		{object}	EntryDeleteResponse
// @Failure		409		{object}	EntryDeleteResponse
// @Failure		500		{object}	EntryDeleteResponse
// @Param			id		path		URIID	true	"ID formatted as string"
// @Param			scope	query		string	false	"One of single, group. Defaults to single."
// @Router			/v1/entries/{id} [delete]
func DeleteEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryDeleteResponse{
			Error: &s,
		})
		return
	}

	deleted, err := engine().DeleteEntry(c.Request.Context(), uri.ID.UUID, ledger.DeleteScope(c.Query("scope")))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryDeleteResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EntryDeleteResponse{Data: deleted})
}

// @Summary		Toggle debt settlement
// @Description	Marks a debt entry as settled, or as open again if it already is settled
// @Tags			Entries
// @Produce		json
// @Success		200	{object}	EntryResponse
// @Failure		400	{object}	EntryResponse
// @Failure		404	{object}	EntryResponse
// @Failure		409	{object}	EntryResponse
// @Failure		500	{object}	EntryResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/entries/{id}/toggle-debt [post]
func ToggleEntryDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	entry, err := engine().ToggleDebtSettlement(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	data := newEntry(c, entry)
	c.JSON(http.StatusOK, EntryResponse{Data: &data})
}
