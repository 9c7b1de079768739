package qris

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeScalar(t *testing.T) {
	t.Parallel()

	p, err := Decode("000201")
	if err != nil {
		t.Fatalf("Decode(\"000201\") = %v", err)
	}
	if p.Len() != 1 || p.Value("00") != "01" {
		t.Errorf("Decode(\"000201\") = %v, want {00: 01}", p.Tags())
	}
}

func TestDecodeEmptyValue(t *testing.T) {
	t.Parallel()

	p, err := Decode("0000010211")
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}
	f, ok := p.Get("00")
	if !ok || f.Value != "" {
		t.Errorf("tag 00 = %+v, want empty value", f)
	}
	// The next field starts exactly four characters later.
	if p.Value("01") != "11" {
		t.Errorf("tag 01 = %q, want 11", p.Value("01"))
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	p, err := Decode("")
	if err != nil || p.Len() != 0 {
		t.Errorf("Decode(\"\") = %v, %v; want empty payload", p, err)
	}
}

func TestDecodeTemplates(t *testing.T) {
	t.Parallel()

	p, err := Decode(dynamicMixed)
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}

	wantTags := "00,01,26,51,52,53,54,58,59,60,61,62,63"
	if got := strings.Join(p.Tags(), ","); got != wantTags {
		t.Errorf("tags = %s, want %s", got, wantTags)
	}

	merchant, ok := p.Template("26")
	if !ok {
		t.Fatal("tag 26 is not a template")
	}
	if got := strings.Join(merchant.Tags(), ","); got != "00,01,02,03" {
		t.Errorf("tag 26 sub-tags = %s", got)
	}
	if merchant.Value("00") != "ID.CO.QRIS.WWW" {
		t.Errorf("26/00 = %q", merchant.Value("00"))
	}

	// 51 is outside the composite range and stays opaque.
	if f, _ := p.Get("51"); f.IsTemplate() {
		t.Error("tag 51 decoded as a template")
	}

	additional, ok := p.AdditionalData()
	if !ok {
		t.Fatal("tag 62 is not a template")
	}
	if got := strings.Join(additional.Tags(), ","); got != "01,05,07,08" {
		t.Errorf("tag 62 sub-tags = %s", got)
	}
	if p.CRC() != "4B58" {
		t.Errorf("CRC = %s", p.CRC())
	}
}

func TestDecodeSubTagsAreNotComposite(t *testing.T) {
	t.Parallel()

	// Sub-tag 26 inside 62 holds "000100" verbatim.
	p, err := Decode("62102606000100")
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}
	additional, _ := p.Template("62")
	if f, _ := additional.Get("26"); f.IsTemplate() || f.Value != "000100" {
		t.Errorf("62/26 = %+v, want scalar 000100", f)
	}
}

func TestDecodeDuplicateTags(t *testing.T) {
	t.Parallel()

	p, err := Decode("000201010211000202")
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}
	if got := strings.Join(p.Tags(), ","); got != "00,01" {
		t.Errorf("tags = %s, want 00,01", got)
	}
	if p.Value("00") != "02" {
		t.Errorf("tag 00 = %q, want last value 02", p.Value("00"))
	}
}

func TestDecodeCountsCharacters(t *testing.T) {
	t.Parallel()

	p, err := Decode("5905Café!0000")
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}
	if p.Value("59") != "Café!" || !p.Has("00") {
		t.Errorf("decoded %q, %v", p.Value("59"), p.Tags())
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   error
		offset int
		tag    string
		parent string
	}{
		{"truncated tag", "0", ErrTruncatedTag, 0, "", ""},
		{"truncated tag after field", "0002010", ErrTruncatedTag, 6, "", ""},
		{"truncated length", "000", ErrTruncatedLength, 0, "00", ""},
		{"non-numeric length", "00a101", ErrInvalidLength, 0, "00", ""},
		{"signed length", "00-1", ErrInvalidLength, 0, "00", ""},
		{"truncated value", "0005ab", ErrTruncatedValue, 0, "00", ""},
		{"nested truncated value", "00020126060005ab", ErrTruncatedValue, 10, "00", "26"},
		{"nested truncated tag", "62070002010", ErrTruncatedTag, 10, "", "62"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode(%q) = %v, want %v", tt.input, err, tt.want)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q) error does not match ErrMalformed", tt.input)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Decode(%q) = %T, want *DecodeError", tt.input, err)
			}
			if de.Offset != tt.offset || de.Tag != tt.tag || de.Parent != tt.parent {
				t.Errorf("DecodeError = {Offset:%d Tag:%q Parent:%q}, want {%d %q %q}",
					de.Offset, de.Tag, de.Parent, tt.offset, tt.tag, tt.parent)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, input := range []string{dynamicRefOnly, dynamicMixed, staticRefOnly, staticMixed, "000201", "0000", "6200"} {
		p, err := Decode(input)
		if err != nil {
			t.Fatalf("Decode(%q) = %v", input, err)
		}
		got, err := Encode(p)
		if err != nil {
			t.Fatalf("Encode = %v", err)
		}
		if got != input {
			t.Errorf("Encode(Decode(x)) = %q, want %q", got, input)
		}
	}
}

func TestEncodeOrderAndNesting(t *testing.T) {
	t.Parallel()

	p := NewPayload()
	p.Set("59", "Café")
	sub := NewPayload()
	sub.Set("05", "REF")
	sub.Set("01", "B")
	p.SetTemplate("62", sub)
	p.Set("00", "01")

	got, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode = %v", err)
	}
	if want := "5904Café62120503REF0101B000201"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxValueLength+1)

	tests := []struct {
		name   string
		build  func() *Payload
		want   error
		tag    string
		parent string
	}{
		{"scalar too long", func() *Payload {
			p := NewPayload()
			p.Set("59", long)
			return p
		}, ErrValueTooLong, "59", ""},
		{"template too long", func() *Payload {
			sub := NewPayload()
			sub.Set("01", strings.Repeat("x", 60))
			sub.Set("02", strings.Repeat("y", 60))
			p := NewPayload()
			p.SetTemplate("62", sub)
			return p
		}, ErrValueTooLong, "62", ""},
		{"sub-field too long", func() *Payload {
			sub := NewPayload()
			sub.Set("01", long)
			p := NewPayload()
			p.SetTemplate("26", sub)
			return p
		}, ErrValueTooLong, "01", "26"},
		{"bad tag", func() *Payload {
			p := NewPayload()
			p.Set("123", "x")
			return p
		}, ErrInvalidTag, "123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.build())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Encode = %v, want %v", err, tt.want)
			}
			var ee *EncodeError
			if !errors.As(err, &ee) || ee.Tag != tt.tag || ee.Parent != tt.parent {
				t.Errorf("EncodeError = %+v, want tag %q parent %q", ee, tt.tag, tt.parent)
			}
		})
	}
}

func TestEncodeWithChecksumReplacesCRC(t *testing.T) {
	t.Parallel()

	p, err := Decode(dynamicRefOnly[:len(dynamicRefOnly)-4] + "0000")
	if err != nil {
		t.Fatalf("Decode = %v", err)
	}
	got, err := EncodeWithChecksum(p)
	if err != nil {
		t.Fatalf("EncodeWithChecksum = %v", err)
	}
	if got != dynamicRefOnly {
		t.Errorf("EncodeWithChecksum = %q, want %q", got, dynamicRefOnly)
	}
	if p.CRC() != "0000" {
		t.Error("EncodeWithChecksum modified its argument")
	}
}
