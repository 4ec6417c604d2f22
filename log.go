package vt

import "github.com/rs/zerolog"

// Logger is used for the debug-level diagnostics described in spec.md §7:
// unknown control sequences, unsupported modes and discarded configuration
// errors are never fatal, but are worth a trace when something looks wrong.
// It defaults to a disabled logger so embedding a Terminal costs nothing
// unless the caller opts in.
var Logger zerolog.Logger = zerolog.Nop()

// SetLogger replaces the package-level logger used for internal diagnostics.
func SetLogger(l zerolog.Logger) {
	Logger = l
}

func logUnhandled(component string, value interface{}) {
	Logger.Debug().Str("component", component).Interface("value", value).Msg("unhandled")
}

func logInvalid(component string, value interface{}) {
	Logger.Debug().Str("component", component).Interface("value", value).Msg("invalid")
}
