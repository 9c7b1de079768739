package qris

import "log/slog"

// ValidatorOption represents a functional option for validator configuration
type ValidatorOption func(*Validator)

// WithRequiredTags replaces the set of mandatory top-level tags.
func WithRequiredTags(tags ...string) ValidatorOption {
	return func(v *Validator) {
		v.required = append([]string(nil), tags...)
	}
}

// WithValidationLevel sets the validation level
func WithValidationLevel(level ValidationLevel) ValidatorOption {
	return func(v *Validator) {
		v.level = level
	}
}

func WithStrictValidation() ValidatorOption {
	return WithValidationLevel(ValidationStrict)
}

func WithBasicValidation() ValidatorOption {
	return WithValidationLevel(ValidationBasic)
}

// WithRule adds a rule for a top-level tag. Added rules run at every level.
func WithRule(tag string, rules ...ValidationRule) ValidatorOption {
	return func(v *Validator) {
		v.customRules[tag] = append(v.customRules[tag], rules...)
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		v.log = logger
	}
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent goroutines for the processor.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithErrorHandler sets a custom error handler for errors encountered during
// batch or stream processing.
func WithErrorHandler(handler func(Result)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}

// WithStaticConversion makes the processor also convert every valid payload
// to its static form.
func WithStaticConversion(enabled bool) ProcessorOption {
	return func(p *Processor) {
		p.convert = enabled
	}
}
