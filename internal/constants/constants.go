package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "KILLZONE_CONFIG"
	EnvPort       = "PORT"

	DefaultConfigPath    = "./killzone_config.json"
	DefaultServerAddress = ":3000"
	DefaultDatabasePath  = "./data/killzone.db"

	ServiceName = "killzone"

	HeaderContentType = "Content-Type"
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteHealth          = "/health"
	RouteVersion         = "/version"
	RouteWorldState      = "/world/state"
	RouteWorldCollisions = "/world/collisions"
	RouteWorldReset      = "/world/reset"
	RouteWorldStream     = "/world/stream"
	RoutePlayerJoin      = "/player/join"
	RoutePlayerLeave     = "/player/leave"
	RoutePlayerStatus    = "/player/:playerID/status"
	RoutePlayerMove      = "/player/:playerID/move"
	RouteCombats         = "/combats"
	RouteLeaderboard     = "/leaderboard"
	RouteFighterStats    = "/fighters/:name"
)

// Common JSON response keys
const (
	JSONKeySuccess     = "success"
	JSONKeyError       = "error"
	JSONKeyMessage     = "message"
	JSONKeyID          = "id"
	JSONKeyPlayer      = "player"
	JSONKeyWorld       = "world"
	JSONKeyNewPos      = "newPos"
	JSONKeyCollision   = "collision"
	JSONKeyWorldState  = "worldState"
	JSONKeyCollisions  = "collisions"
	JSONKeyCombats     = "combats"
	JSONKeyLeaderboard = "leaderboard"
	JSONKeyFighter     = "fighter"
)

// Common error messages used across API handlers
const (
	ErrNameRequired           = "Player name is required and must be a non-empty string"
	ErrPlayerIDRequired       = "Player id is required"
	ErrPlayerNotFound         = "Player not found"
	ErrInvalidDirection       = "Invalid direction. Use up, down, left or right"
	ErrEndpointNotFound       = "Endpoint not found"
	ErrInternal               = "Internal server error"
	ErrFailedFetchCombats     = "Failed to fetch combat history"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFighterNotFound        = "Fighter not found"
	ErrFighterNameRequired    = "Fighter name is required"
)

// Logging field names
const (
	LogFieldPlayerID   = "player_id"
	LogFieldPlayerName = "player_name"
	LogFieldDirection  = "direction"
	LogFieldWinnerID   = "winner_id"
	LogFieldLoserID    = "loser_id"
	LogFieldCount      = "count"
	LogFieldAddr       = "addr"
	LogFieldMethod     = "method"
	LogFieldPath       = "path"
	LogFieldStatus     = "status"
	LogFieldLatencyMS  = "latency_ms"
	LogFieldClientIP   = "client_ip"
	LogFieldBytes      = "bytes"
	LogFieldConfigPath = "config_path"
)
