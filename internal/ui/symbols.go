package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Form submitted
	SymbolFail     = "✗" // Stream or submission failed
	SymbolPending  = "○" // Waiting for the first frame
	SymbolComplete = "●" // Stream finished
	SymbolFocus    = "›" // Focused field
)
