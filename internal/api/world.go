package api

import (
	"net/http"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/gin-gonic/gin"
)

// Health reports liveness, uptime and the current population.
func (h *ArenaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.arena.Health())
}

// WorldState returns the full world snapshot. Every call advances the
// tick counter.
func (h *ArenaHandler) WorldState(c *gin.Context) {
	c.JSON(http.StatusOK, h.arena.State(c.Request.Context()))
}

// Collisions lists pairs of players currently sharing a cell.
func (h *ArenaHandler) Collisions(c *gin.Context) {
	pairs := h.arena.Collisions(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess:    true,
		constants.JSONKeyCollisions: pairs,
	})
}

// ResetWorld removes every player. Only routed when resets are allowed.
func (h *ArenaHandler) ResetWorld(c *gin.Context) {
	h.arena.Reset(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyMessage: "World reset",
	})
}
