package qris

import "sync"

// Builder pool for reuse
var builderPool = sync.Pool{
	New: func() interface{} {
		return &Builder{
			errors: make([]error, 0, 4),
		}
	},
}

// Builder assembles a payload field by field. The first error recorded is
// returned by Build.
type Builder struct {
	payload *Payload
	errors  []error
}

func NewBuilder() *Builder {
	b := builderPool.Get().(*Builder)
	b.payload = NewPayload()
	b.errors = b.errors[:0]
	return b
}

// Release returns the builder to the pool
func (b *Builder) Release() {
	b.payload = nil
	b.errors = b.errors[:0]
	builderPool.Put(b)
}

func (b *Builder) Field(tag, value string) *Builder {
	if len(tag) != TagLength {
		b.errors = append(b.errors, &EncodeError{Tag: tag, Err: ErrInvalidTag})
		return b
	}
	b.payload.Set(tag, value)
	return b
}

// Template sets a composite tag from the given sub-fields, in order.
func (b *Builder) Template(tag string, subs ...Field) *Builder {
	if len(tag) != TagLength {
		b.errors = append(b.errors, &EncodeError{Tag: tag, Err: ErrInvalidTag})
		return b
	}
	nested := NewPayload()
	for _, sub := range subs {
		if len(sub.Tag) != TagLength {
			b.errors = append(b.errors, &EncodeError{Tag: sub.Tag, Parent: tag, Err: ErrInvalidTag})
			return b
		}
		nested.Set(sub.Tag, sub.Value)
	}
	b.payload.SetTemplate(tag, nested)
	return b
}

func (b *Builder) PayloadFormat(v string) *Builder {
	return b.Field(TagPayloadFormat, v)
}

func (b *Builder) InitiationMethod(v string) *Builder {
	return b.Field(TagInitiationMethod, v)
}

func (b *Builder) MerchantCategory(v string) *Builder {
	return b.Field(TagMerchantCategory, v)
}

func (b *Builder) Currency(v string) *Builder {
	return b.Field(TagTransactionCurrency, v)
}

func (b *Builder) Amount(v string) *Builder {
	return b.Field(TagTransactionAmount, v)
}

func (b *Builder) CountryCode(v string) *Builder {
	return b.Field(TagCountryCode, v)
}

func (b *Builder) MerchantName(v string) *Builder {
	return b.Field(TagMerchantName, v)
}

func (b *Builder) MerchantCity(v string) *Builder {
	return b.Field(TagMerchantCity, v)
}

func (b *Builder) PostalCode(v string) *Builder {
	return b.Field(TagPostalCode, v)
}

func (b *Builder) AdditionalData(subs ...Field) *Builder {
	return b.Template(TagAdditionalData, subs...)
}

// Payload returns the fields set so far.
func (b *Builder) Payload() (*Payload, error) {
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}
	return b.payload.Clone(), nil
}

// Build encodes the payload and appends its CRC field.
func (b *Builder) Build() (string, error) {
	if len(b.errors) > 0 {
		return "", b.errors[0]
	}
	return EncodeWithChecksum(b.payload)
}

func (b *Builder) MustBuild() string {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
