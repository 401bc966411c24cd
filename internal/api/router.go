package api

import (
	"github.com/RichStephens/killzone/internal/constants"
	"github.com/gin-gonic/gin"
)

// RouterOptions selects optional routes.
type RouterOptions struct {
	AllowReset bool
}

// NewRouter builds the gin engine with every arena route under /api.
// stream may be nil, in which case the websocket route is not registered.
func NewRouter(h *ArenaHandler, stream *StreamHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(), Recovery(), CORS())
	router.NoRoute(NotFound)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, h.Health)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.GET(constants.RouteWorldState, h.WorldState)
		apiRoutes.GET(constants.RouteWorldCollisions, h.Collisions)
		if opts.AllowReset {
			apiRoutes.POST(constants.RouteWorldReset, h.ResetWorld)
		}
		if stream != nil {
			apiRoutes.GET(constants.RouteWorldStream, stream.Stream)
		}

		apiRoutes.POST(constants.RoutePlayerJoin, h.JoinPlayer)
		apiRoutes.POST(constants.RoutePlayerLeave, h.LeavePlayer)
		apiRoutes.GET(constants.RoutePlayerStatus, h.PlayerStatus)
		apiRoutes.POST(constants.RoutePlayerMove, h.MovePlayer)

		apiRoutes.GET(constants.RouteCombats, h.ListCombats)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteFighterStats, h.GetFighterStats)
	}
	return router
}
