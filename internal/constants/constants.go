package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "BATTLESHIPS_CONFIG"
	EnvDBPath     = "BATTLESHIPS_DB"

	DefaultConfigPath = "./battleships_config.json"

	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteGames        = "/games"
	RouteGameByID     = "/games/:gameID"
	RouteGameRandom   = "/games/:gameID/randomize"
	RouteGameSubmit   = "/games/:gameID/submit"
	RouteGameShots    = "/games/:gameID/shots"
	RouteGameEndTurn  = "/games/:gameID/end-turn"
	RouteGameSave     = "/games/:gameID/save"
	RouteGameEvents   = "/games/:gameID/ws"
	RouteSaveByName   = "/saves/:name"
	RouteSaveLoad     = "/saves/:name/load"
	ParamGameID       = "gameID"
	ParamSaveName     = "name"
	QueryViewerPlayer = "player"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyGameID  = "game_id"
	JSONKeyExists  = "exists"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidGameID       = "Invalid game ID"
	ErrGameNotFound        = "Game not found"
	ErrSaveNotFound        = "Save slot not found"
	ErrNoSavedGame         = "No saved game"
	ErrSavedGameCorrupt    = "Saved game is corrupt"
	ErrFailedCreateGame    = "Failed to create game"
	ErrFailedSaveGame      = "Failed to save game"
	ErrFailedLoadGame      = "Failed to load game"
	ErrFailedDeleteSave    = "Failed to delete save"
	ErrFailedUpdateGame    = "Failed to update game"
	ErrInvalidBoardSize    = "Invalid board size"
	ErrInvalidPlayerName   = "Invalid player name"
	ErrShotOutOfBounds     = "Shot is outside the board"
	ErrCellAlreadyHit      = "Cell was already hit"
	ErrNoShotsLeft         = "No shots left this turn"
	ErrWrongPhase          = "Action not allowed in this phase"
	ErrGameOver            = "Game is over"
	ErrPlacementFailed     = "Could not place the fleet on this board"
	ErrInvalidViewerPlayer = "player must be 1 or 2"
)

// Logging field names
const (
	LogFieldGameID  = "game_id"
	LogFieldSlot    = "slot"
	LogFieldPlayer  = "player"
	LogFieldX       = "x"
	LogFieldY       = "y"
	LogFieldPhase   = "phase"
	LogFieldWinner  = "winner"
	LogFieldSource  = "source"
	LogFieldAddr    = "addr"
	LogFieldDriver  = "driver"
	LogFieldPath    = "path"
	LogFieldVersion = "version"
	LogFieldClients = "clients"
)
