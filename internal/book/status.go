package book

import (
	"fmt"
	"strings"
)

// Status is the ownership and reading state of a record.
type Status string

const (
	StatusForPurchase Status = "FOR_PURCHASE"
	StatusOwned       Status = "OWNED"
	StatusReading     Status = "READING"
	StatusRead        Status = "READ"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{StatusForPurchase, StatusOwned, StatusReading, StatusRead}

// ParseStatus accepts a status code ("READING") or a historic display label
// ("For Purchase"), case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	if normalized == "FORPURCHASE" {
		normalized = string(StatusForPurchase)
	}

	for _, status := range AllStatuses {
		if string(status) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown status %q", string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
