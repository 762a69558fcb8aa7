package tui

// Color constants for the goalie TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#0E7490" // Headers, accent elements
	ColorAccentBright = "#22D3EE" // Highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings
)
