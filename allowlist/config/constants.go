package config

import "time"

// UI and Display Constants
const (
	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
	PendingColor = 0x3498DB

	// Embed limits
	EmbedFieldLimit     = 1024
	StoryPreviewLength  = 1000
	PendingListPageSize = 10
)

// Database and Performance Constants
const (
	DefaultQueryTimeout = 30 * time.Second
	StartupTimeout      = 2 * time.Minute
	ShutdownTimeout     = 10 * time.Second

	// Interaction handler budgets
	CommandExecutionTimeout   = 10 * time.Second
	ComponentExecutionTimeout = 15 * time.Second
	SlowHandlerThreshold      = 2 * time.Second

	// Startup reconciliation
	IntakeHistoryLimit     = 10
	ReconcileConcurrency   = 4
	UserCacheSize          = 512
	DefaultPromptTimeout   = 5 * time.Minute
	DefaultCooldownSeconds = 24 * 60 * 60
	DefaultMinimumAge      = 18
)

// Interaction custom IDs. Component IDs are persisted in Discord with the message, so
// they must stay stable across releases.
const (
	ApplyButtonID     = "/apply"
	ApplicationForm   = "/apply-form"
	ApprovePrefix     = "/review/approve/"
	DeclinePrefix     = "/review/decline/"
	ReasonModalPrefix = "/review/reason/"

	// Modal text input IDs
	SteamHexInput       = "steam_hex"
	RealNameInput       = "real_name"
	CharacterNameInput  = "character_name"
	AgeInput            = "age"
	CharacterStoryInput = "character_story"
	ReasonInput         = "reason"
)

// Control registry keys
const (
	IntakeControlID = "intake"
	ReviewControlID = "review/"
)
