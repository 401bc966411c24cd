package api

import (
	"net/http"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/gin-gonic/gin"
)

type joinRequest struct {
	Name string `json:"name"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type leaveRequest struct {
	ID string `json:"id"`
}

// JoinPlayer spawns a player at a random cell.
func (h *ArenaHandler) JoinPlayer(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, constants.ErrNameRequired)
		return
	}
	p, err := h.arena.Join(c.Request.Context(), req.Name)
	if err != nil {
		failFromError(c, err, constants.ErrNameRequired, constants.ErrPlayerNotFound)
		return
	}
	width, height := h.arena.Dimensions()
	c.JSON(http.StatusCreated, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyID:      p.ID,
		"name":                   p.Name,
		"x":                      p.X,
		"y":                      p.Y,
		"health":                 p.Health,
		"status":                 p.Status,
		constants.JSONKeyPlayer:  p,
		constants.JSONKeyWorld:   gin.H{"width": width, "height": height},
	})
}

// PlayerStatus returns a single player's snapshot.
func (h *ArenaHandler) PlayerStatus(c *gin.Context) {
	p, err := h.arena.Status(c.Request.Context(), c.Param("playerID"))
	if err != nil {
		failFromError(c, err, constants.ErrPlayerIDRequired, constants.ErrPlayerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyPlayer:  p,
	})
}

// MovePlayer moves a player one cell. When the target cell is occupied the
// response carries the combat outcome in "collision", otherwise null.
func (h *ArenaHandler) MovePlayer(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, constants.ErrInvalidDirection)
		return
	}
	ctx := c.Request.Context()
	res, err := h.arena.Move(ctx, c.Param("playerID"), req.Direction)
	if err != nil {
		failFromError(c, err, constants.ErrInvalidDirection, constants.ErrPlayerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess:    true,
		constants.JSONKeyNewPos:     res.Position,
		constants.JSONKeyCollision:  res.Combat,
		constants.JSONKeyWorldState: h.arena.State(ctx),
	})
}

// LeavePlayer removes the player named in the body.
func (h *ArenaHandler) LeavePlayer(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		fail(c, http.StatusBadRequest, constants.ErrPlayerIDRequired)
		return
	}
	if err := h.arena.Leave(c.Request.Context(), req.ID); err != nil {
		failFromError(c, err, constants.ErrPlayerIDRequired, constants.ErrPlayerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyID:      req.ID,
	})
}
