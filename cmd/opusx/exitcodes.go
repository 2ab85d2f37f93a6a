package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, unknown format, write failure)
	ExitConfigError = 2 // Configuration error (unreadable config, invalid timezone or doc_types)
	ExitDataError   = 3 // Data error (malformed XML)
	ExitNoSource    = 4 // No XML file given and none found in the working directory
)
