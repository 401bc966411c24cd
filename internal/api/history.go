package api

import (
	"net/http"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListCombats returns the most recent recorded fights, newest first.
func (h *ArenaHandler) ListCombats(c *gin.Context) {
	limit := parseLimit(c, h.leaderboardSize)
	combats, err := h.arena.RecentCombats(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, constants.ErrFailedFetchCombats)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyCombats: combats,
	})
}

// ListLeaderboard returns fighters ranked by wins (desc), then losses (asc).
func (h *ArenaHandler) ListLeaderboard(c *gin.Context) {
	limit := parseLimit(c, h.leaderboardSize)
	top, err := h.arena.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, constants.ErrFailedFetchLeaderboard)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess:     true,
		constants.JSONKeyLeaderboard: top,
	})
}

// GetFighterStats returns the recorded wins and losses for a player name.
func (h *ArenaHandler) GetFighterStats(c *gin.Context) {
	s, err := h.arena.FighterStats(c.Request.Context(), c.Param("name"))
	if err != nil {
		failFromError(c, err, constants.ErrFighterNameRequired, constants.ErrFighterNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyFighter: s,
	})
}
