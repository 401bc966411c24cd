package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with method, path, status,
// latency and response size.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logging.Fields{
			constants.LogFieldMethod:    c.Request.Method,
			constants.LogFieldPath:      c.Request.URL.Path,
			constants.LogFieldStatus:    c.Writer.Status(),
			constants.LogFieldLatencyMS: time.Since(start).Milliseconds(),
			constants.LogFieldClientIP:  c.ClientIP(),
			constants.LogFieldBytes:     c.Writer.Size(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logging.Warn("request", fields)
			return
		}
		logging.Info("request", fields)
	}
}

// Recovery turns a handler panic into a JSON 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Error("panic in handler", fmt.Errorf("%v", recovered), logging.Fields{
			constants.LogFieldMethod: c.Request.Method,
			constants.LogFieldPath:   c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			constants.JSONKeySuccess: false,
			constants.JSONKeyError:   constants.ErrInternal,
		})
	})
}

// CORS allows browser clients on any origin; the arena has no credentials
// to protect.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{constants.HeaderContentType},
		MaxAge:          12 * time.Hour,
	})
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, constants.ErrEndpointNotFound)
}
