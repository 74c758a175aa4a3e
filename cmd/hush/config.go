package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLogFile = "log-file"
	FlagTrace   = "trace"

	// Start command flags
	FlagTUI       = "tui"
	FlagSkipHome  = "skip-home"
	FlagNoMouse   = "no-mouse"
	FlagAltScreen = "alt-screen"

	// Trace command flags
	FlagFollow = "follow"
	FlagCount  = "count"

	// Output format flags
	FlagJSON = "json"
)
