package qris

const hexTableUpper = "0123456789ABCDEF"

// formatChecksum renders a CRC register as four upper-case hex digits.
func formatChecksum(crc uint16) string {
	var buf [ChecksumLength]byte
	buf[0] = hexTableUpper[crc>>12&0x0f]
	buf[1] = hexTableUpper[crc>>8&0x0f]
	buf[2] = hexTableUpper[crc>>4&0x0f]
	buf[3] = hexTableUpper[crc&0x0f]
	return string(buf[:])
}

// appendLength writes n as a two-digit zero-padded decimal.
// Callers guarantee 0 <= n <= MaxValueLength.
func appendLength(buf []byte, n int) []byte {
	return append(buf, byte('0'+n/10), byte('0'+n%10))
}

// parseLength reads a two-digit decimal length prefix.
func parseLength(a, b rune) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// tagNumber converts a two-digit tag to its numeric value.
func tagNumber(tag string) (int, bool) {
	if len(tag) != TagLength {
		return 0, false
	}
	return parseLength(rune(tag[0]), rune(tag[1]))
}
