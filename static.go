package qris

import "log/slog"

// ToStatic converts input to a static payload with the default validator.
func ToStatic(input string) (string, error) {
	return defaultValidator.ToStatic(input)
}

// MakeStatic returns a copy of p rewritten as a reusable static payload:
// tag 01 set to "11", the transaction amount (54) and old CRC (63) removed,
// and the transaction-specific sub-tags 05-08 dropped from tag 62. Tag 62 is
// removed when nothing is left in it. p is not modified.
func MakeStatic(p *Payload) *Payload {
	out := p.Clone()
	out.Set(TagInitiationMethod, InitiationStatic)
	out.Delete(TagTransactionAmount)
	out.Delete(TagCRC)

	if additional, ok := out.AdditionalData(); ok {
		for _, sub := range transactionSubTags {
			additional.Delete(sub)
		}
		if additional.Len() == 0 {
			out.Delete(TagAdditionalData)
		}
	}
	return out
}

// ToStatic decodes input, rewrites it with MakeStatic and stamps a fresh CRC
// over the re-encoded body and the "6304" header. The CRC of input itself is
// not checked.
//
// The result is decoded and CRC-checked again before returning. If that
// self-verification fails the produced string is still returned, together
// with a *ReconversionError.
func (v *Validator) ToStatic(input string) (string, error) {
	p, err := Decode(input)
	if err != nil {
		return "", err
	}

	out, err := EncodeWithChecksum(MakeStatic(p))
	if err != nil {
		return "", err
	}

	if err := verifyEncoded(out); err != nil {
		v.logger().Warn("static payload failed self-verification",
			slog.String("output", out),
			slog.Any("error", err))
		return out, &ReconversionError{Output: out, Err: err}
	}

	v.logger().Debug("static payload generated", slog.String("output", out))
	return out, nil
}

func verifyEncoded(s string) error {
	if _, err := Decode(s); err != nil {
		return err
	}
	return VerifyChecksum(s)
}
