package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// parseLimit reads the optional ?limit=N query parameter. Values outside
// (0, maxListLimit] fall back to def.
func parseLimit(c *gin.Context, def int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxListLimit {
			return n
		}
	}
	return def
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{constants.JSONKeySuccess: false, constants.JSONKeyError: msg})
}

// failFromError maps arena errors to HTTP responses. notFoundMsg and
// invalidMsg are the client-facing messages for the two known kinds;
// anything else is logged and reported as an internal error.
func failFromError(c *gin.Context, err error, invalidMsg, notFoundMsg string) {
	switch {
	case errors.Is(err, game.ErrInvalidArgument):
		fail(c, http.StatusBadRequest, invalidMsg)
	case errors.Is(err, game.ErrNotFound):
		fail(c, http.StatusNotFound, notFoundMsg)
	default:
		logging.Error("request failed", err, logging.Fields{
			constants.LogFieldMethod: c.Request.Method,
			constants.LogFieldPath:   c.Request.URL.Path,
		})
		fail(c, http.StatusInternalServerError, constants.ErrInternal)
	}
}
