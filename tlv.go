package qris

import (
	"fmt"
	"unicode/utf8"
)

// Decode walks a merchant-presented payload and returns its fields in order
// of appearance. Each field is a 2-character tag, a 2-digit decimal length
// and that many characters of value. Values of composite tags (26-45, 62)
// are decoded one level deeper; sub-tags are never treated as composite.
//
// Lengths count characters, not bytes. The walk must land exactly on the end
// of the input; the first structural anomaly is returned as a *DecodeError.
// Length prefixes are not cross-checked against content, so a wrong length
// shifts the following boundaries and is usually caught by the CRC check.
func Decode(input string) (*Payload, error) {
	return decodeScope([]rune(input), 0, "")
}

// decodeScope decodes data as a flat TLV sequence. base is the offset of
// data[0] within the top-level input; parent is the enclosing template tag.
func decodeScope(data []rune, base int, parent string) (*Payload, error) {
	p := NewPayload()

	offset := 0
	for offset < len(data) {
		start := offset

		// Tag
		if offset+TagLength > len(data) {
			return nil, &DecodeError{
				Offset: base + start,
				Parent: parent,
				Err:    ErrTruncatedTag,
				Detail: fmt.Sprintf("need %d, got %d", TagLength, len(data)-offset),
			}
		}
		tag := string(data[offset : offset+TagLength])
		offset += TagLength

		// Length
		if offset+LengthDigits > len(data) {
			return nil, &DecodeError{
				Offset: base + start,
				Tag:    tag,
				Parent: parent,
				Err:    ErrTruncatedLength,
				Detail: fmt.Sprintf("need %d, got %d", LengthDigits, len(data)-offset),
			}
		}
		length, ok := parseLength(data[offset], data[offset+1])
		if !ok {
			return nil, &DecodeError{
				Offset: base + start,
				Tag:    tag,
				Parent: parent,
				Err:    ErrInvalidLength,
				Detail: fmt.Sprintf("%q is not a two-digit decimal", string(data[offset:offset+LengthDigits])),
			}
		}
		offset += LengthDigits

		// Value
		if offset+length > len(data) {
			return nil, &DecodeError{
				Offset: base + start,
				Tag:    tag,
				Parent: parent,
				Err:    ErrTruncatedValue,
				Detail: fmt.Sprintf("need %d, got %d", length, len(data)-offset),
			}
		}
		value := data[offset : offset+length]
		offset += length

		if parent == "" && IsComposite(tag) {
			nested, err := decodeScope(value, base+start+HeaderLength, tag)
			if err != nil {
				return nil, err
			}
			p.SetTemplate(tag, nested)
			continue
		}
		p.Set(tag, string(value))
	}

	return p, nil
}

// Encode serializes p in insertion order. Templates are encoded recursively
// and prefixed with the character count of their encoded sub-fields. The
// result carries exactly the fields of p; no CRC is added.
func Encode(p *Payload) (string, error) {
	buf := getBuffer()
	defer func() { putBuffer(buf) }()

	var err error
	buf, err = appendScope(buf, p, "")
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// EncodeWithChecksum encodes p, minus any tag 63 it carries, and appends a
// freshly computed CRC field.
func EncodeWithChecksum(p *Payload) (string, error) {
	if p.Has(TagCRC) {
		p = p.Clone()
		p.Delete(TagCRC)
	}
	body, err := Encode(p)
	if err != nil {
		return "", err
	}
	return Stamp(body), nil
}

func appendScope(buf []byte, p *Payload, parent string) ([]byte, error) {
	for _, f := range p.Fields() {
		if utf8.RuneCountInString(f.Tag) != TagLength {
			return buf, &EncodeError{Tag: f.Tag, Parent: parent, Err: ErrInvalidTag}
		}
		buf = append(buf, f.Tag...)

		if f.Nested == nil {
			n := utf8.RuneCountInString(f.Value)
			if n > MaxValueLength {
				return buf, &EncodeError{Tag: f.Tag, Parent: parent, Length: n, Err: ErrValueTooLong}
			}
			buf = appendLength(buf, n)
			buf = append(buf, f.Value...)
			continue
		}

		// Reserve the length prefix and patch it once the template is written.
		lenAt := len(buf)
		buf = append(buf, '0', '0')
		var err error
		buf, err = appendScope(buf, f.Nested, f.Tag)
		if err != nil {
			return buf, err
		}
		n := utf8.RuneCount(buf[lenAt+LengthDigits:])
		if n > MaxValueLength {
			return buf, &EncodeError{Tag: f.Tag, Parent: parent, Length: n, Err: ErrValueTooLong}
		}
		buf[lenAt] = byte('0' + n/10)
		buf[lenAt+1] = byte('0' + n%10)
	}
	return buf, nil
}
