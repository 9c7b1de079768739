package qris

import "unicode/utf8"

// crc16Table is the MSB-first lookup table for polynomial 0x1021.
var crc16Table = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// CRC16 computes CRC-16/CCITT-FALSE (init 0xFFFF, poly 0x1021, no
// reflection, no final XOR) over the characters of data. Each character
// contributes the low byte of its code point, not its UTF-8 encoding.
func CRC16(data string) uint16 {
	crc := uint16(0xFFFF)
	for _, r := range data {
		crc = (crc << 8) ^ crc16Table[byte(crc>>8)^byte(r)]
	}
	return crc
}

// Checksum returns CRC16 of data as four upper-case hex digits.
func Checksum(data string) string {
	return formatChecksum(CRC16(data))
}

// Stamp appends the CRC field to an encoded body that carries no CRC yet.
func Stamp(body string) string {
	withHeader := body + crcHeader
	return withHeader + Checksum(withHeader)
}

// VerifyChecksum compares the last four characters of input with the CRC of
// everything before them. The split is positional and does not look at where
// tag 63 was decoded.
func VerifyChecksum(input string) error {
	body, provided := splitChecksum(input)
	expected := Checksum(body)
	if provided != expected {
		return &ChecksumError{Provided: provided, Expected: expected}
	}
	return nil
}

// splitChecksum separates the trailing four characters from input.
func splitChecksum(input string) (body, provided string) {
	n := utf8.RuneCountInString(input)
	if n <= ChecksumLength {
		return "", input
	}
	// walk back four runes
	cut := len(input)
	for i := 0; i < ChecksumLength; i++ {
		_, size := utf8.DecodeLastRuneInString(input[:cut])
		cut -= size
	}
	return input[:cut], input[cut:]
}
