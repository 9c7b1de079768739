package qris

// Top-level tags of the merchant-presented payload.
const (
	TagPayloadFormat         = "00"
	TagInitiationMethod      = "01"
	TagMerchantAccount       = "26" // first merchant account template
	TagMerchantAccountLast   = "45" // last merchant account template
	TagDomesticRepository    = "51"
	TagMerchantCategory      = "52"
	TagTransactionCurrency   = "53"
	TagTransactionAmount     = "54"
	TagCountryCode           = "58"
	TagMerchantName          = "59"
	TagMerchantCity          = "60"
	TagPostalCode            = "61"
	TagAdditionalData        = "62"
	TagCRC                   = "63"
	compositeRangeFirst      = 26
	compositeRangeLast       = 45
	additionalDataTagNumeric = 62
)

// Sub-tags. Merchant account templates and the additional data template use
// overlapping codes; both live in the nested namespace.
const (
	SubTagGlobalID             = "00"
	SubTagMerchantPAN          = "01"
	SubTagMerchantID           = "02"
	SubTagMerchantCriteria     = "03"
	SubTagBillNumber           = "01"
	SubTagMobileNumber         = "02"
	SubTagStoreLabel           = "03"
	SubTagLoyaltyNumber        = "04"
	SubTagReferenceLabel       = "05"
	SubTagCustomerLabel        = "06"
	SubTagTerminalLabel        = "07"
	SubTagPurposeOfTransaction = "08"
	SubTagPaymentLabel         = "60"
)

// Point of initiation method values.
const (
	InitiationStatic  = "11"
	InitiationDynamic = "12"
)

const (
	TagLength      = 2
	LengthDigits   = 2
	HeaderLength   = TagLength + LengthDigits
	MaxValueLength = 99
	ChecksumLength = 4

	// crcHeader is the tag and length of the trailing CRC field. The CRC is
	// computed over everything up to and including this header.
	crcHeader = TagCRC + "04"
)

// RequiredTags must all be present at the top level of a valid payload.
var RequiredTags = []string{
	TagPayloadFormat,
	TagInitiationMethod,
	TagMerchantAccount,
	TagMerchantCategory,
	TagTransactionCurrency,
	TagCountryCode,
	TagMerchantName,
	TagMerchantCity,
	TagCRC,
}

// transactionSubTags are stripped from the additional data template when a
// payload is made static.
var transactionSubTags = []string{
	SubTagReferenceLabel,
	SubTagCustomerLabel,
	SubTagTerminalLabel,
	SubTagPurposeOfTransaction,
}

var tagNames = map[string]string{
	"00": "Payload Format Indicator",
	"01": "Point of Initiation Method",
	"26": "Merchant Account Information",
	"51": "Merchant Account Information Domestic Central Repository",
	"52": "Merchant Category Code",
	"53": "Transaction Currency",
	"54": "Transaction Amount",
	"58": "Country Code",
	"59": "Merchant Name",
	"60": "Merchant City",
	"61": "Postal Code",
	"62": "Additional Data Field Template",
	"63": "CRC",
}

var subTagNames = map[string]string{
	"00": "Global Unique Identifier",
	"01": "Merchant PAN",
	"02": "Merchant ID",
	"03": "Merchant Criteria",
	"05": "Reference Label",
	"06": "Customer Label",
	"07": "Terminal Label",
	"08": "Purpose of Transaction",
	"60": "Payment Label",
}

// TagName returns the human label of a top-level tag. Every tag in the
// merchant account range shares the label of 26.
func TagName(tag string) (string, bool) {
	if IsMerchantAccount(tag) {
		tag = TagMerchantAccount
	}
	name, ok := tagNames[tag]
	return name, ok
}

// SubTagName returns the human label of a tag inside a template.
func SubTagName(tag string) (string, bool) {
	name, ok := subTagNames[tag]
	return name, ok
}

// IsComposite reports whether a top-level tag holds a nested template:
// the merchant account range 26-45 and the additional data template 62.
func IsComposite(tag string) bool {
	n, ok := tagNumber(tag)
	if !ok {
		return false
	}
	return (n >= compositeRangeFirst && n <= compositeRangeLast) || n == additionalDataTagNumeric
}

// IsMerchantAccount reports whether tag is in the merchant account range 26-45.
func IsMerchantAccount(tag string) bool {
	n, ok := tagNumber(tag)
	return ok && n >= compositeRangeFirst && n <= compositeRangeLast
}
