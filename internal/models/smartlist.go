package models

import (
	"fmt"
	"strings"
)

// SmartList names a fixed filter/sort preset over the task collection.
type SmartList string

const (
	ListAll       SmartList = "all"
	ListToday     SmartList = "today"
	ListCompleted SmartList = "completed"
)

// ParseSmartList parses a smart list name, case-insensitively.
func ParseSmartList(s string) (SmartList, error) {
	switch strings.ToLower(s) {
	case "all":
		return ListAll, nil
	case "today":
		return ListToday, nil
	case "completed":
		return ListCompleted, nil
	}
	return "", fmt.Errorf("unknown smart list: %q", s)
}
