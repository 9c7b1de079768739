package qris

import "fmt"

// String renders the field in its encoded TLV form. Fields that cannot be
// encoded render as their tag followed by the error.
func (f Field) String() string {
	p := NewPayload()
	p.put(f)
	s, err := Encode(p)
	if err != nil {
		return fmt.Sprintf("%s<%v>", f.Tag, err)
	}
	return s
}

// Label returns the human label of the field as a top-level tag.
func (f Field) Label() (string, bool) {
	return TagName(f.Tag)
}

// Sub returns a scalar sub-field, for use with Builder.Template.
func Sub(tag, value string) Field {
	return Field{Tag: tag, Value: value}
}

// firstNotIn returns the character index of the first rune in s that fails
// ok, or -1.
func firstNotIn(s string, ok func(rune) bool) int {
	i := 0
	for _, r := range s {
		if !ok(r) {
			return i
		}
		i++
	}
	return -1
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isUpperHex(r rune) bool {
	return isDigit(r) || (r >= 'A' && r <= 'F')
}

func isHex(r rune) bool {
	return isUpperHex(r) || (r >= 'a' && r <= 'f')
}
