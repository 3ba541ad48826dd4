package adapters

import "unicode"

// currencySymbolToCode maps the currency symbols used on storefront pages to ISO 4217 codes
var currencySymbolToCode = map[rune]string{
	'$': "USD",
	'€': "EUR",
	'£': "GBP",
	'¥': "JPY",
	'₹': "INR",
	'₩': "KRW",
	'₽': "RUB",
	'₫': "VND",
	'₪': "ILS",
	'₱': "PHP",
	'฿': "THB",
	'₦': "NGN",
	'₴': "UAH",
	'₭': "LAK",
	'₲': "PYG",
	'₡': "CRC",
	'₵': "GHS",
}

// ResolveCurrency finds the first currency symbol in text and returns its ISO code.
//
// found is false when text contains no currency symbol at all. When a symbol is
// present but not in the table, found is true and code is empty.
func ResolveCurrency(text string) (code string, found bool) {
	for _, r := range text {
		if !unicode.Is(unicode.Sc, r) {
			continue
		}
		return currencySymbolToCode[r], true
	}
	return "", false
}
