package qris

// Sample payloads. dynamic* carry tag 54 and transaction data in tag 62;
// static* are their expected static forms.
const (
	dynamicRefOnly = "00020101021226660014ID.CO.QRIS.WWW01189360091530000000010215ID10200000000010303UMI" +
		"51440014ID.CO.QRIS.WWW0215ID10200000000010303UMI5204581253033605405150005802ID" +
		"5922WARUNG MAKAN SEDERHANA6007JAKARTA61051234562190506INV0010805LUNCH6304D495"

	dynamicMixed = "00020101021226660014ID.CO.QRIS.WWW01189360091530000000010215ID10200000000010303UMI" +
		"51440014ID.CO.QRIS.WWW0215ID10200000000010303UMI5204581253033605405150005802ID" +
		"5922WARUNG MAKAN SEDERHANA6007JAKARTA61051234562350106BILL420506INV0010702T10805LUNCH63044B58"

	staticRefOnly = "00020101021126660014ID.CO.QRIS.WWW01189360091530000000010215ID10200000000010303UMI" +
		"51440014ID.CO.QRIS.WWW0215ID10200000000010303UMI5204581253033605802ID" +
		"5922WARUNG MAKAN SEDERHANA6007JAKARTA6105123456304963B"

	staticMixed = "00020101021126660014ID.CO.QRIS.WWW01189360091530000000010215ID10200000000010303UMI" +
		"51440014ID.CO.QRIS.WWW0215ID10200000000010303UMI5204581253033605802ID" +
		"5922WARUNG MAKAN SEDERHANA6007JAKARTA61051234562100106BILL426304E88F"
)

// restamp replaces the trailing "6304XXXX" of s with a freshly computed one.
func restamp(s string) string {
	return Stamp(s[:len(s)-HeaderLength-ChecksumLength])
}
