package qris

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed        = errors.New("malformed payload")
	ErrTruncatedTag     = errors.New("insufficient data for tag")
	ErrTruncatedLength  = errors.New("insufficient data for length")
	ErrTruncatedValue   = errors.New("insufficient data for value")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrValueTooLong     = errors.New("value too long")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrMissingTags      = errors.New("missing required tags")
	ErrRuleViolation    = errors.New("rule violation")
	ErrReconversion     = errors.New("static payload failed self-verification")
)

// DecodeError reports the first structural anomaly found while walking a
// payload. Offset is the character offset of the offending field within the
// top-level input, also when the failure happened inside a template.
type DecodeError struct {
	Offset int
	Tag    string
	Parent string // enclosing template tag, empty at top level
	Err    error
	Detail string
}

func (de *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	switch {
	case de.Parent != "" && de.Tag != "":
		fmt.Fprintf(&b, " tag %s/%s", de.Parent, de.Tag)
	case de.Parent != "":
		fmt.Fprintf(&b, " template %s", de.Parent)
	case de.Tag != "":
		fmt.Fprintf(&b, " tag %s", de.Tag)
	}
	fmt.Fprintf(&b, " at offset %d: %v", de.Offset, de.Err)
	if de.Detail != "" {
		b.WriteString(": ")
		b.WriteString(de.Detail)
	}
	return b.String()
}

func (de *DecodeError) Unwrap() error { return de.Err }

// Is makes every DecodeError match ErrMalformed.
func (de *DecodeError) Is(target error) bool { return target == ErrMalformed }

// EncodeError is returned when a field cannot be written in two-digit
// length-prefixed form.
type EncodeError struct {
	Tag    string
	Parent string
	Length int
	Err    error
}

func (ee *EncodeError) Error() string {
	tag := ee.Tag
	if ee.Parent != "" {
		tag = ee.Parent + "/" + ee.Tag
	}
	if errors.Is(ee.Err, ErrValueTooLong) {
		return fmt.Sprintf("encode tag %s: %v: %d characters exceeds maximum %d", tag, ee.Err, ee.Length, MaxValueLength)
	}
	return fmt.Sprintf("encode tag %q: %v", tag, ee.Err)
}

func (ee *EncodeError) Unwrap() error { return ee.Err }

// ChecksumError carries the CRC found at the end of the payload and the one
// computed over the preceding characters.
type ChecksumError struct {
	Provided string
	Expected string
}

func (ce *ChecksumError) Error() string {
	return fmt.Sprintf("invalid CRC: provided %s, calculated %s", ce.Provided, ce.Expected)
}

func (ce *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

// MissingTagsError lists mandatory top-level tags absent from a decoded payload.
type MissingTagsError struct {
	Tags []string
}

func (me *MissingTagsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingTags, strings.Join(me.Tags, ", "))
}

func (me *MissingTagsError) Is(target error) bool { return target == ErrMissingTags }

// ValidationError is a strict-level format rule failure for a single tag.
type ValidationError struct {
	Tag     string
	Rule    string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for tag %s (%s): %s", ve.Tag, ve.Rule, ve.Message)
}

func (ve *ValidationError) Is(target error) bool { return target == ErrRuleViolation }

// ReconversionError is returned by ToStatic alongside the produced string
// when that string does not decode or does not carry a matching CRC.
type ReconversionError struct {
	Output string
	Err    error
}

func (re *ReconversionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrReconversion, re.Err)
}

func (re *ReconversionError) Unwrap() []error { return []error{ErrReconversion, re.Err} }
