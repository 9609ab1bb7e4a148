package zanox

import (
	"encoding/json"
	"fmt"
)

// UnexpectedStatusError is returned when the provider answers with anything
// but HTTP 200. The whole logical call is aborted; there is no retry.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("expected response status code 200, got %d", e.StatusCode)
}

// MissingDataError is returned when a payload lacks a field the mapper
// requires, or when a single-item lookup comes back empty. The offending
// payload is kept for diagnostics.
type MissingDataError struct {
	Field   string
	Payload json.RawMessage
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing required field %q in payload: %s", e.Field, string(e.Payload))
}

// UnknownEnumValueError is returned when a provider discriminator string is
// not present in the fixed mapping tables. Unknown values are never defaulted.
type UnknownEnumValueError struct {
	Kind  string
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Kind, e.Value)
}
