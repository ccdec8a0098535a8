package discord

// Embed colors
const (
	ColorCommon    = 0x95A5A6 // Grey
	ColorRare      = 0x5865F2 // Discord Blurple
	ColorEpic      = 0x9B59B6 // Purple
	ColorLegendary = 0xFFD700 // Gold
	ColorLevelUp   = 0x57F287 // Green
)

// Embed footer texts
const (
	FooterAchievements = "Baby Goats Achievements"
	FooterProgression  = "Baby Goats Progression"
)

// Log messages
const (
	LogMsgAnnouncerStarted    = "Discord announcer connected"
	LogMsgAnnouncerStopped    = "Discord announcer disconnected"
	LogMsgAnnouncementSent    = "Discord announcement sent"
	LogMsgAnnouncementFailed  = "Failed to send Discord announcement"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for announcement"
	LogMsgAthleteLookupFailed = "Failed to load athlete for announcement"
)

// Error messages
const (
	ErrMsgCreateSession = "error creating Discord session: %w"
	ErrMsgOpenSession   = "error opening Discord connection: %w"
)
