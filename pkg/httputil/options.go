package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// options answers an OPTIONS request with the allowed methods.
func options(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(append([]string{http.MethodOptions}, methods...), ", "))
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	options(c, http.MethodGet)
}

func OptionsPost(c *gin.Context) {
	options(c, http.MethodPost)
}

func OptionsGetPost(c *gin.Context) {
	options(c, http.MethodGet, http.MethodPost)
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, http.MethodGet, http.MethodPatch, http.MethodDelete)
}
