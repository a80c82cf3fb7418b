package clog

import "log/slog"

// ParseLevel parses a level name such as "debug" or "WARN". Unknown names
// fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
