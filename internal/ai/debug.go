package ai

import "log/slog"

// level is shared between the process log handler and the hot-path gate, so
// changing it at runtime affects both.
var level slog.LevelVar

// LogLevel returns the level variable to install into slog.HandlerOptions.
func LogLevel() *slog.LevelVar { return &level }

// SetLogLevel changes the process log level.
func SetLogLevel(l slog.Level) { level.Set(l) }

// IsDebugEnabled reports whether per-frame debug logs should be built.
// Guard expensive attributes with it:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("state changed", "handle", c.Handle(), "to", c.State())
//	}
func IsDebugEnabled() bool {
	return level.Level() <= slog.LevelDebug
}
