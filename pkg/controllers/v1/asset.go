package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/httputil"
	"github.com/ledgerline/backend/pkg/models"
)

// AssetEditable represents all user configurable parameters
type AssetEditable struct {
	Name         string      `json:"name" example:"Index fund" default:""` // Name of the asset
	CurrentValue types.Money `json:"currentValue" example:"1315.40"`       // The current market value
}

func (editable AssetEditable) model() models.Asset {
	return models.Asset{
		Name:         editable.Name,
		CurrentValue: editable.CurrentValue,
	}
}

type AssetLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/assets/3b1ea324-d438-4419-882a-2fc91d71772f"`           // The asset itself
	Entries string `json:"entries" example:"https://example.com/api/v1/entries?asset=3b1ea324-d438-4419-882a-2fc91d71772f"` // Investments into the asset
}

type Asset struct {
	models.DefaultModel
	AssetEditable
	Invested types.Money `json:"invested" example:"1200.00"` // Sum of all investments into the asset
	Links    AssetLinks  `json:"links"`
}

func newAsset(c *gin.Context, model models.Asset) Asset {
	url := c.GetString(string(models.DBContextURL))

	return Asset{
		DefaultModel: model.DefaultModel,
		AssetEditable: AssetEditable{
			Name:         model.Name,
			CurrentValue: model.CurrentValue,
		},
		Invested: model.Invested,
		Links: AssetLinks{
			Self:    fmt.Sprintf("%s/v1/assets/%s", url, model.ID),
			Entries: fmt.Sprintf("%s/v1/entries?asset=%s", url, model.ID),
		},
	}
}

type AssetListResponse struct {
	Data  []Asset `json:"data"`                                                          // List of assets
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AssetCreateResponse struct {
	Data  []AssetResponse `json:"data"`                                                          // List of the created assets or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AssetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AssetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AssetResponse struct {
	Data  *Asset  `json:"data"`                                                          // Data for the asset
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterAssetRoutes registers the routes for assets with
// the RouterGroup that is passed.
func RegisterAssetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAssetList)
		r.GET("", GetAssets)
		r.POST("", CreateAssets)
	}

	// Asset with ID
	{
		r.OPTIONS("/:id", OptionsAssetDetail)
		r.GET("/:id", GetAsset)
		r.PATCH("/:id", UpdateAsset)
		r.DELETE("/:id", DeleteAsset)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assets
// @Success		204
// @Router			/v1/assets [options]
func OptionsAssetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/assets/{id} [options]
func OptionsAssetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Asset{})
}

// @Summary		Create assets
// @Description	Creates new assets. Investment entries add their amount to the asset.
// @Tags			Assets
// @Produce		json
// @Success		201		{object}	AssetCreateResponse
// @Failure		400		{object}	AssetCreateResponse
// @Failure		500		{object}	AssetCreateResponse
// @Param			assets	body		[]AssetEditable	true	"Assets"
// @Router			/v1/assets [post]
func CreateAssets(c *gin.Context) {
	var editables []AssetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AssetCreateResponse{}

	for _, editable := range editables {
		asset := editable.model()

		err = models.DB.Create(&asset).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAsset(c, asset)
		r.Data = append(r.Data, AssetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get assets
// @Description	Returns all assets, ordered by name
// @Tags			Assets
// @Produce		json
// @Success		200	{object}	AssetListResponse
// @Failure		500	{object}	AssetListResponse
// @Router			/v1/assets [get]
func GetAssets(c *gin.Context) {
	var assets []models.Asset
	err := models.DB.Order("name ASC").Find(&assets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Asset, 0, len(assets))
	for _, asset := range assets {
		data = append(data, newAsset(c, asset))
	}

	c.JSON(http.StatusOK, AssetListResponse{Data: data})
}

// @Summary		Get asset
// @Description	Returns a specific asset
// @Tags			Assets
// @Produce		json
// @Success		200	{object}	AssetResponse
// @Failure		400	{object}	AssetResponse
// @Failure		404	{object}	AssetResponse
// @Failure		500	{object}	AssetResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/assets/{id} [get]
func GetAsset(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	var asset models.Asset
	err = models.DB.First(&asset, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	data := newAsset(c, asset)
	c.JSON(http.StatusOK, AssetResponse{Data: &data})
}

// @Summary		Update asset
// @Description	Updates an asset. Only values to be updated need to be specified.
// @Tags			Assets
// @Accept			json
// @Produce		json
// @Success		200		{object}	AssetResponse
// @Failure		400		{object}	AssetResponse
// @Failure		404		{object}	AssetResponse
// @Failure		500		{object}	AssetResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			asset	body		AssetEditable	true	"Asset"
// @Router			/v1/assets/{id} [patch]
func UpdateAsset(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	var asset models.Asset
	err = models.DB.First(&asset, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AssetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	var data AssetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	copyFields(&asset, data.model(), updateFields)
	err = models.DB.Save(&asset).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssetResponse{
			Error: &s,
		})
		return
	}

	r := newAsset(c, asset)
	c.JSON(http.StatusOK, AssetResponse{Data: &r})
}

// @Summary		Delete asset
// @Description	Deletes an asset. Investments into it are kept without an asset.
// @Tags			Assets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/assets/{id} [delete]
func DeleteAsset(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var asset models.Asset
	err = models.DB.First(&asset, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&asset).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
