package utils

import (
	"fmt"
	"time"
)

const QueryDateFormat = "2006-01-02"

// ParseQueryDate parses an optional YYYY-MM-DD query parameter. An empty
// value yields nil.
func ParseQueryDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(QueryDateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q (expected %s): %w", value, QueryDateFormat, err)
	}
	return &t, nil
}
