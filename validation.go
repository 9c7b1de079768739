package qris

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationRule checks the format of a single decoded field.
type ValidationRule interface {
	Validate(field Field) error
	Name() string // Returns the name of the rule (e.g., "length")
}

// Validator runs the decode, CRC and required-tag checks over a raw payload
// and, at ValidationStrict, the per-tag format rules. It holds no per-call
// state and is safe for concurrent use once constructed.
type Validator struct {
	required     []string
	level        ValidationLevel
	fieldRules   map[string][]ValidationRule // rules keyed by top-level tag
	accountRules []ValidationRule            // rules for every merchant account template
	customRules  map[string][]ValidationRule // user rules, run at every level
	log          *slog.Logger
}

// NewValidator creates a validator with the default required tags at
// ValidationBasic.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		required:     append([]string(nil), RequiredTags...),
		level:        ValidationBasic,
		fieldRules:   strictFieldRules(),
		accountRules: strictAccountRules(),
		customRules:  make(map[string][]ValidationRule),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

func (v *Validator) logger() *slog.Logger {
	if v.log == nil {
		return slog.Default()
	}
	return v.log
}

var defaultValidator = NewValidator()

// Validate checks input with the default validator.
func Validate(input string) (*Payload, error) {
	return defaultValidator.Validate(input)
}

// Level returns the configured validation level.
func (v *Validator) Level() ValidationLevel {
	return v.level
}

// Validate decodes input, verifies the trailing CRC and checks that every
// required tag is present, in that order, and returns the decoded payload.
// The CRC split is positional: the last four characters against everything
// before them.
func (v *Validator) Validate(input string) (*Payload, error) {
	p, err := Decode(input)
	if err != nil {
		v.logger().Debug("payload decode failed", slog.Any("error", err))
		return nil, err
	}

	if err := VerifyChecksum(input); err != nil {
		v.logger().Debug("payload checksum mismatch", slog.Any("error", err))
		return nil, err
	}

	if missing := v.missingTags(p); len(missing) > 0 {
		v.logger().Debug("payload missing required tags", slog.Any("tags", missing))
		return nil, &MissingTagsError{Tags: missing}
	}

	if err := v.ValidatePayload(p); err != nil {
		v.logger().Debug("payload rule violation", slog.Any("error", err))
		return nil, err
	}

	return p, nil
}

func (v *Validator) missingTags(p *Payload) []string {
	var missing []string
	for _, tag := range v.required {
		if !p.Has(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}

// ValidatePayload runs the format rules over an already decoded payload.
// Custom rules always run; the built-in tag rules only at ValidationStrict.
// The first failure is returned.
func (v *Validator) ValidatePayload(p *Payload) error {
	for _, f := range p.Fields() {
		if v.level >= ValidationStrict {
			if err := runRules(f, v.fieldRules[f.Tag]); err != nil {
				return err
			}
			if f.Nested != nil && IsMerchantAccount(f.Tag) {
				if err := runRules(f, v.accountRules); err != nil {
					return err
				}
			}
		}
		if err := runRules(f, v.customRules[f.Tag]); err != nil {
			return err
		}
	}
	return nil
}

func runRules(f Field, rules []ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(f); err != nil {
			return &ValidationError{
				Tag:     f.Tag,
				Rule:    rule.Name(),
				Message: err.Error(),
			}
		}
	}
	return nil
}

func strictFieldRules() map[string][]ValidationRule {
	return map[string][]ValidationRule{
		TagPayloadFormat:       {&EnumRule{Values: []string{"01"}}},
		TagInitiationMethod:    {&EnumRule{Values: []string{InitiationStatic, InitiationDynamic}}},
		TagMerchantCategory:    {&LengthRule{ExactLength: 4}, &NumericRule{}},
		TagTransactionCurrency: {&LengthRule{ExactLength: 3}, &NumericRule{}},
		TagTransactionAmount: {
			&LengthRule{MinLength: 1, MaxLength: 13},
			&RegexRule{Pattern: amountPattern, Description: "amount must be digits with an optional decimal point"},
		},
		TagCountryCode:  {&LengthRule{ExactLength: 2}, &AlphaRule{}},
		TagMerchantName: {&LengthRule{MinLength: 1, MaxLength: 25}},
		TagMerchantCity: {&LengthRule{MinLength: 1, MaxLength: 15}},
		TagPostalCode:   {&LengthRule{MaxLength: 10}},
		TagCRC:          {&LengthRule{ExactLength: ChecksumLength}, &HexRule{UpperOnly: true}},
	}
}

func strictAccountRules() []ValidationRule {
	return []ValidationRule{&SubTagRule{Required: []string{SubTagGlobalID}}}
}

// --- Validation Rule Implementations ---

var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]*)?$`)

// LengthRule validates the field's character count.
type LengthRule struct {
	MinLength   int
	MaxLength   int
	ExactLength int
}

// Name returns the rule name.
func (r *LengthRule) Name() string {
	return "length"
}

// Validate checks the field's length constraints.
func (r *LengthRule) Validate(field Field) error {
	length := utf8.RuneCountInString(field.Value)

	if r.ExactLength > 0 && length != r.ExactLength {
		return fmt.Errorf("expected length %d, got %d", r.ExactLength, length)
	}

	if r.MinLength > 0 && length < r.MinLength {
		return fmt.Errorf("length %d below minimum %d", length, r.MinLength)
	}

	if r.MaxLength > 0 && length > r.MaxLength {
		return fmt.Errorf("length %d exceeds maximum %d", length, r.MaxLength)
	}

	return nil
}

// NumericRule validates that the field contains only decimal digits.
type NumericRule struct{}

func (r *NumericRule) Name() string {
	return "numeric"
}

func (r *NumericRule) Validate(field Field) error {
	if i := firstNotIn(field.Value, isDigit); i >= 0 {
		return fmt.Errorf("non-numeric character at position %d", i)
	}
	return nil
}

// AlphaRule validates that the field contains only ASCII letters.
type AlphaRule struct{}

func (r *AlphaRule) Name() string {
	return "alpha"
}

func (r *AlphaRule) Validate(field Field) error {
	if i := firstNotIn(field.Value, isLetter); i >= 0 {
		return fmt.Errorf("non-letter character at position %d", i)
	}
	return nil
}

// HexRule validates hexadecimal content.
type HexRule struct {
	UpperOnly bool
}

func (r *HexRule) Name() string {
	return "hex"
}

func (r *HexRule) Validate(field Field) error {
	check := isHex
	if r.UpperOnly {
		check = isUpperHex
	}
	if i := firstNotIn(field.Value, check); i >= 0 {
		return fmt.Errorf("invalid hex character at position %d", i)
	}
	return nil
}

// EnumRule validates that the field equals one of Values.
type EnumRule struct {
	Values []string
}

func (r *EnumRule) Name() string {
	return "enum"
}

func (r *EnumRule) Validate(field Field) error {
	for _, v := range r.Values {
		if field.Value == v {
			return nil
		}
	}
	return fmt.Errorf("value %q not one of %s", field.Value, strings.Join(r.Values, ", "))
}

// RegexRule validates the field against a compiled regular expression.
type RegexRule struct {
	Pattern     *regexp.Regexp
	Description string // User-friendly error message
}

// Name returns the rule name.
func (r *RegexRule) Name() string {
	return "regex"
}

// Validate checks the field against the regex.
func (r *RegexRule) Validate(field Field) error {
	if !r.Pattern.MatchString(field.Value) {
		if r.Description != "" {
			return fmt.Errorf("%s", r.Description)
		}
		return fmt.Errorf("does not match pattern %s", r.Pattern)
	}
	return nil
}

// SubTagRule validates that a template carries the listed sub-tags.
type SubTagRule struct {
	Required []string
}

func (r *SubTagRule) Name() string {
	return "subtags"
}

func (r *SubTagRule) Validate(field Field) error {
	if field.Nested == nil {
		return fmt.Errorf("not a template")
	}
	for _, tag := range r.Required {
		if !field.Nested.Has(tag) {
			return fmt.Errorf("missing sub-tag %s", tag)
		}
	}
	return nil
}

// CustomRule allows defining an arbitrary validation function.
type CustomRule struct {
	ValidateFunc func(Field) error
	RuleName     string
}

// Name returns the custom rule name.
func (r *CustomRule) Name() string {
	return r.RuleName
}

// Validate executes the custom validation function.
func (r *CustomRule) Validate(field Field) error {
	return r.ValidateFunc(field)
}
