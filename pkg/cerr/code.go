package cerr

import "log/slog"

type Code int

const (
	OK              = Code(0)
	Unknown         = Code(1)
	InvalidArgument = Code(2)
	NotFound        = Code(3)
	Internal        = Code(4)
	DataLoss        = Code(5)
)

var codeNames = map[Code]string{
	OK:              "ok",
	Unknown:         "unknown",
	InvalidArgument: "invalid_argument",
	NotFound:        "not_found",
	Internal:        "internal",
	DataLoss:        "data_loss",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Level is the slog level an error with this code should be logged at.
// Caller mistakes are informational, broken data is a warning, everything
// else is an error.
func (c Code) Level() slog.Level {
	switch c {
	case OK, InvalidArgument, NotFound:
		return slog.LevelInfo
	case DataLoss:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
