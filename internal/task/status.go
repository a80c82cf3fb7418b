package task

import (
	"fmt"
	"strings"

	"github.com/kazz187/agileboard/pkg/cerr"
)

// Status represents task status
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

var statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Statuses returns the fixed status enumeration in board order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// StatusNames returns the statuses as a comma separated list.
func StatusNames() string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus resolves user input such as "in  progress" to a Status,
// ignoring case and runs of whitespace.
func ParseStatus(text string) (Status, error) {
	normalized := strings.Join(strings.Fields(text), " ")
	for _, s := range statuses {
		if strings.EqualFold(normalized, string(s)) {
			return s, nil
		}
	}
	return "", invalidStatusError(text)
}

// ValidateStatus reports a cerr.InvalidArgument error unless text is exactly
// one of the statuses.
func ValidateStatus(text string) error {
	if Status(text).Valid() {
		return nil
	}
	return invalidStatusError(text)
}

func invalidStatusError(text string) error {
	return cerr.NewError(cerr.InvalidArgument,
		fmt.Sprintf("invalid status '%s'. Must be one of: %s", text, StatusNames()), nil)
}
