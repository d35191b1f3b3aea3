package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/models"
)

// CounterpartyEditable represents all user configurable parameters
type CounterpartyEditable struct {
	Name string `json:"name" example:"Alex" default:""` // Name of the counterparty
}

func (editable CounterpartyEditable) model() models.Counterparty {
	return models.Counterparty{
		Name: editable.Name,
	}
}

type CounterpartyLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/counterparties/3b1ea324-d438-4419-882a-2fc91d71772f"`          // The counterparty itself
	Entries string `json:"entries" example:"https://example.com/api/v1/entries?counterparty=3b1ea324-d438-4419-882a-2fc91d71772f"` // Entries of the counterparty
}

type Counterparty struct {
	models.DefaultModel
	CounterpartyEditable
	Links CounterpartyLinks `json:"links"`
}

func newCounterparty(c *gin.Context, model models.Counterparty) Counterparty {
	url := c.GetString(string(models.DBContextURL))

	return Counterparty{
		DefaultModel: model.DefaultModel,
		CounterpartyEditable: CounterpartyEditable{
			Name: model.Name,
		},
		Links: CounterpartyLinks{
			Self:    fmt.Sprintf("%s/v1/counterparties/%s", url, model.ID),
			Entries: fmt.Sprintf("%s/v1/entries?counterparty=%s", url, model.ID),
		},
	}
}

type CounterpartyListResponse struct {
	Data  []Counterparty `json:"data"`                                                          // List of counterparties
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CounterpartyCreateResponse struct {
	Data  []CounterpartyResponse `json:"data"`                                                          // List of the created counterparties or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CounterpartyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CounterpartyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CounterpartyResponse struct {
	Data  *Counterparty `json:"data"`                                                          // Data for the counterparty
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterCounterpartyRoutes registers the routes for counterparties with
// the RouterGroup that is passed.
func RegisterCounterpartyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCounterpartyList)
		r.GET("", GetCounterparties)
		r.POST("", CreateCounterparties)
	}

	// Counterparty with ID
	{
		r.OPTIONS("/:id", OptionsCounterpartyDetail)
		r.GET("/:id", GetCounterparty)
		r.PATCH("/:id", UpdateCounterparty)
		r.DELETE("/:id", DeleteCounterparty)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Counterparties
// @Success		204
// @Router			/v1/counterparties [options]
func OptionsCounterpartyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Counterparties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/counterparties/{id} [options]
func OptionsCounterpartyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Counterparty{})
}

// @Summary		Create counterparties
// @Description	Creates new counterparties
// @Tags			Counterparties
// @Produce		json
// @Success		201				{object}	CounterpartyCreateResponse
// @Failure		400				{object}	CounterpartyCreateResponse
// @Failure		500				{object}	CounterpartyCreateResponse
// @Param			counterparties	body		[]CounterpartyEditable	true	"Counterparties"
// @Router			/v1/counterparties [post]
func CreateCounterparties(c *gin.Context) {
	var editables []CounterpartyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CounterpartyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CounterpartyCreateResponse{}

	for _, editable := range editables {
		counterparty := editable.model()

		err = models.DB.Create(&counterparty).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCounterparty(c, counterparty)
		r.Data = append(r.Data, CounterpartyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get counterparties
// @Description	Returns all counterparties, ordered by name
// @Tags			Counterparties
// @Produce		json
// @Success		200	{object}	CounterpartyListResponse
// @Failure		500	{object}	CounterpartyListResponse
// @Router			/v1/counterparties [get]
func GetCounterparties(c *gin.Context) {
	var counterparties []models.Counterparty
	err := models.DB.Order("name ASC").Find(&counterparties).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Counterparty, 0, len(counterparties))
	for _, counterparty := range counterparties {
		data = append(data, newCounterparty(c, counterparty))
	}

	c.JSON(http.StatusOK, CounterpartyListResponse{Data: data})
}

// @Summary		Get counterparty
// @Description	Returns a specific counterparty
// @Tags			Counterparties
// @Produce		json
// @Success		200	{object}	CounterpartyResponse
// @Failure		400	{object}	CounterpartyResponse
// @Failure		404	{object}	CounterpartyResponse
// @Failure		500	{object}	CounterpartyResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/counterparties/{id} [get]
func GetCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	data := newCounterparty(c, counterparty)
	c.JSON(http.StatusOK, CounterpartyResponse{Data: &data})
}

// @Summary		Update counterparty
// @Description	Updates a counterparty. Only values to be updated need to be specified.
// @Tags			Counterparties
// @Accept			json
// @Produce		json
// @Success		200				{object}	CounterpartyResponse
// @Failure		400				{object}	CounterpartyResponse
// @Failure		404				{object}	CounterpartyResponse
// @Failure		500				{object}	CounterpartyResponse
// @Param			id				path		URIID					true	"ID formatted as string"
// @Param			counterparty	body		CounterpartyEditable	true	"Counterparty"
// @Router			/v1/counterparties/{id} [patch]
func UpdateCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CounterpartyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var data CounterpartyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	copyFields(&counterparty, data.model(), updateFields)
	err = models.DB.Save(&counterparty).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	r := newCounterparty(c, counterparty)
	c.JSON(http.StatusOK, CounterpartyResponse{Data: &r})
}

// @Summary		Delete counterparty
// @Description	Deletes a counterparty that no entries or recurring rules reference
// @Tags			Counterparties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/counterparties/{id} [delete]
func DeleteCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&counterparty).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
