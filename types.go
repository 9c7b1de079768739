package qris

import (
	"fmt"
	"strings"
)

type ValidationLevel int

const (
	ValidationBasic ValidationLevel = iota
	ValidationStrict
)

func (l ValidationLevel) String() string {
	switch l {
	case ValidationBasic:
		return "basic"
	case ValidationStrict:
		return "strict"
	default:
		return fmt.Sprintf("ValidationLevel(%d)", int(l))
	}
}

// ParseValidationLevel maps a configuration string to a ValidationLevel.
func ParseValidationLevel(s string) (ValidationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return ValidationBasic, nil
	case "strict":
		return ValidationStrict, nil
	default:
		return ValidationBasic, fmt.Errorf("unknown validation level %q", s)
	}
}

// Field is one decoded TLV unit. Templates (composite tags) carry their
// sub-fields in Nested and leave Value empty.
type Field struct {
	Tag    string
	Value  string
	Nested *Payload
}

// IsTemplate reports whether the field holds a nested sub-field list.
func (f Field) IsTemplate() bool {
	return f.Nested != nil
}

// Result is the outcome of processing one payload in a batch or stream.
type Result struct {
	Index   int
	Input   string
	Payload *Payload
	Static  string
	Err     error
}

// OK reports whether the payload validated.
func (r Result) OK() bool {
	return r.Err == nil
}
