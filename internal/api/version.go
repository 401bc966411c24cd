package api

import (
	"net/http"

	"github.com/RichStephens/killzone/internal/version"
	"github.com/gin-gonic/gin"
)

// Version reports the running build so clients can tell deployments apart.
func Version(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, version.Current())
}
