package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // m.width - 6
	ModalHeightMargin = 3 // m.height - 3
	ModalMinWidth     = 40
	ModalMaxWidth     = 100

	// Chrome around the main area: tab line, column header, prompt, status bar
	TabLineHeight   = 1
	HeaderHeight    = 1
	PromptHeight    = 1
	StatusBarHeight = 1

	// Info pane takes this share of the picker height when shown
	InfoPaneRatio = 0.5
	InfoPaneMin   = 6

	// Modal Content Calculations
	ModalOverheadLines = 6 // Title (2) + padding (2) + border (2)
	ModalFooterLines   = 2 // Footer + blank line

	// Column widths for the crate table
	ColumnName      = 24
	ColumnVersion   = 12
	ColumnDownloads = 14
	ColumnUpdated   = 16

	// Versions listed in the info pane
	InfoVersionLimit = 10
)

// statusTimeout clears transient status messages
const statusTimeout = 3 * time.Second
