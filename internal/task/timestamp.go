package task

import (
	"time"
)

// Timestamp is an instant together with the ISO-8601 text it was read from or
// written as. The text is authoritative: a Timestamp loaded from disk is
// written back verbatim, even when it could not be parsed.
type Timestamp struct {
	t    time.Time
	text string
}

const timestampLayout = time.RFC3339Nano

// Layouts accepted when reading. Timestamps without a zone are local time.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, text: t.Format(timestampLayout)}
}

// ParseTimestamp parses an ISO-8601 date or date-time.
func ParseTimestamp(text string) (Timestamp, error) {
	var lastErr error
	for i, layout := range parseLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, text)
		} else {
			t, err = time.ParseInLocation(layout, text, time.Local)
		}
		if err == nil {
			return Timestamp{t: t, text: text}, nil
		}
		lastErr = err
	}
	return Timestamp{}, lastErr
}

// TimestampFromText is ParseTimestamp that keeps unparseable text with a zero
// instant instead of failing.
func TimestampFromText(text string) Timestamp {
	ts, err := ParseTimestamp(text)
	if err != nil {
		return Timestamp{text: text}
	}
	return ts
}

func (ts Timestamp) Time() time.Time { return ts.t }

func (ts Timestamp) String() string { return ts.text }

func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }
