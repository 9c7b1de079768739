package qris

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Payload is an insertion-ordered tag → field mapping for one TLV scope.
// Setting a tag that already exists replaces its value but keeps its
// original position, so the last write wins and the first occurrence decides
// the order. A Payload is not safe for concurrent mutation.
type Payload struct {
	fields []Field
	index  map[string]int
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{
		fields: make([]Field, 0, 16),
		index:  make(map[string]int, 16),
	}
}

// Len returns the number of tags in the scope.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.fields)
}

// Has reports whether tag is present.
func (p *Payload) Has(tag string) bool {
	if p == nil {
		return false
	}
	_, ok := p.index[tag]
	return ok
}

// Get returns the field stored under tag.
func (p *Payload) Get(tag string) (Field, bool) {
	if p == nil {
		return Field{}, false
	}
	i, ok := p.index[tag]
	if !ok {
		return Field{}, false
	}
	return p.fields[i], true
}

// Value returns the scalar value of tag, or "" when absent or a template.
func (p *Payload) Value(tag string) string {
	f, _ := p.Get(tag)
	return f.Value
}

// Template returns the nested payload of a composite tag.
func (p *Payload) Template(tag string) (*Payload, bool) {
	f, ok := p.Get(tag)
	if !ok || f.Nested == nil {
		return nil, false
	}
	return f.Nested, true
}

// Set stores a scalar value under tag.
func (p *Payload) Set(tag, value string) {
	p.put(Field{Tag: tag, Value: value})
}

// SetTemplate stores a nested payload under tag. A nil nested payload is
// stored as an empty template.
func (p *Payload) SetTemplate(tag string, nested *Payload) {
	if nested == nil {
		nested = NewPayload()
	}
	p.put(Field{Tag: tag, Nested: nested})
}

func (p *Payload) put(f Field) {
	if p.index == nil {
		p.index = make(map[string]int, 16)
	}
	if i, ok := p.index[f.Tag]; ok {
		p.fields[i] = f
		return
	}
	p.index[f.Tag] = len(p.fields)
	p.fields = append(p.fields, f)
}

// Delete removes tag and reports whether it was present. The remaining
// fields keep their relative order.
func (p *Payload) Delete(tag string) bool {
	i, ok := p.index[tag]
	if !ok {
		return false
	}
	p.fields = append(p.fields[:i], p.fields[i+1:]...)
	delete(p.index, tag)
	for j := i; j < len(p.fields); j++ {
		p.index[p.fields[j].Tag] = j
	}
	return true
}

// Tags returns the tags in order.
func (p *Payload) Tags() []string {
	tags := make([]string, 0, p.Len())
	for _, f := range p.Fields() {
		tags = append(tags, f.Tag)
	}
	return tags
}

// Fields returns a copy of the ordered field list. Nested payloads are
// shared with the receiver.
func (p *Payload) Fields() []Field {
	if p == nil {
		return nil
	}
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// Clone returns a deep copy, templates included.
func (p *Payload) Clone() *Payload {
	c := NewPayload()
	if p == nil {
		return c
	}
	for _, f := range p.fields {
		if f.Nested != nil {
			f.Nested = f.Nested.Clone()
		}
		c.put(f)
	}
	return c
}

// PayloadFormat returns tag 00.
func (p *Payload) PayloadFormat() string { return p.Value(TagPayloadFormat) }

// InitiationMethod returns tag 01.
func (p *Payload) InitiationMethod() string { return p.Value(TagInitiationMethod) }

// IsStatic reports whether the point of initiation method is "11".
func (p *Payload) IsStatic() bool { return p.InitiationMethod() == InitiationStatic }

// IsDynamic reports whether the point of initiation method is "12".
func (p *Payload) IsDynamic() bool { return p.InitiationMethod() == InitiationDynamic }

func (p *Payload) MerchantCategory() string { return p.Value(TagMerchantCategory) }
func (p *Payload) Currency() string         { return p.Value(TagTransactionCurrency) }
func (p *Payload) Amount() string           { return p.Value(TagTransactionAmount) }
func (p *Payload) CountryCode() string      { return p.Value(TagCountryCode) }
func (p *Payload) MerchantName() string     { return p.Value(TagMerchantName) }
func (p *Payload) MerchantCity() string     { return p.Value(TagMerchantCity) }
func (p *Payload) PostalCode() string       { return p.Value(TagPostalCode) }
func (p *Payload) CRC() string              { return p.Value(TagCRC) }

// AdditionalData returns the tag 62 template.
func (p *Payload) AdditionalData() (*Payload, bool) {
	return p.Template(TagAdditionalData)
}

// MerchantAccounts returns the merchant account templates (26-45) in
// payload order.
func (p *Payload) MerchantAccounts() []Field {
	var out []Field
	for _, f := range p.Fields() {
		if f.Nested != nil && IsMerchantAccount(f.Tag) {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON writes the payload as a JSON object in tag order, templates as
// nested objects.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Tag)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if f.Nested != nil {
			val, err = f.Nested.MarshalJSON()
		} else {
			val, err = json.Marshal(f.Value)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (p *Payload) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, p.Len())
	for _, f := range p.Fields() {
		if f.Nested != nil {
			attrs = append(attrs, slog.Any(f.Tag, f.Nested))
			continue
		}
		attrs = append(attrs, slog.String(f.Tag, f.Value))
	}
	return slog.GroupValue(attrs...)
}
