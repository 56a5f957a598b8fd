package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformed         = errors.New("malformed source")
)

// LoadError reports why a catalog source was rejected. Record is the
// 1-based position of the offending record, or 0 when the failure is not
// tied to one record.
type LoadError struct {
	Source string
	Record int
	Field  string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("failed to load ")
	b.WriteString(e.Source)
	if e.Record > 0 {
		fmt.Fprintf(&b, ": record %d", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, record int, field string, err error) *LoadError {
	return &LoadError{Source: source, Record: record, Field: field, Err: err}
}
