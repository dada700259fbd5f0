package shared

import "time"

// ParseDate accepts YYYY-MM-DD or full RFC3339. An empty value parses
// to the zero time so optional fields stay optional.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
