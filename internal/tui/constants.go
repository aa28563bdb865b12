package tui

// UI Layout Constants

const (
	// Frame
	TabBarHeight    = 2 // Tab headers + blank line
	StatusBarHeight = 1 // Status line at the bottom
	BorderWidth     = 2 // Width consumed by rounded borders

	// Forms
	FormLabelWidth  = 12 // Column reserved for field labels
	FormInputWidth  = 40 // Width of a text input
	FormInputLimit  = 256
	FormHeaderLines = 2 // Section title + blank line

	// Response region below the request form
	MinResponseHeight = 4

	// History table
	HistoryHeaderLines = 4 // Title, search line, table header, header border

	// StatusMaxLength truncates long status messages in the status bar
	StatusMaxLength = 100
)
