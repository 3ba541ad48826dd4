package adapters

import (
	"regexp"
	"strconv"
	"strings"

	"ssg-pdp/internal/types"
)

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.]`)
	// leading decimal number, so "12.50.3" reads as 12.50
	numberPrefixPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ParsePrice normalizes the text of a price block into a simple or range price.
// A "-" marks a range; its two halves are kept in text order. Text without a
// number, or a range with a half that is not a number, yields nil.
func ParsePrice(text string) *types.ParsedPrice {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	currency, _ := ResolveCurrency(text)

	if strings.Contains(text, "-") {
		parts := strings.Split(text, "-")
		if len(parts) != 2 {
			return nil
		}
		minimum, ok := parseAmount(parts[0])
		if !ok {
			return nil
		}
		maximum, ok := parseAmount(parts[1])
		if !ok {
			return nil
		}
		return &types.ParsedPrice{
			Type:     types.PriceTypeRange,
			Minimum:  minimum,
			Maximum:  maximum,
			Currency: currency,
		}
	}

	value, ok := parseAmount(text)
	if !ok {
		return nil
	}

	return &types.ParsedPrice{
		Type:     types.PriceTypeSimple,
		Value:    value,
		Currency: currency,
	}
}

// parseAmount strips everything but digits and dots and reads the leading number
func parseAmount(text string) (float64, bool) {
	digits := numberPrefixPattern.FindString(nonNumericPattern.ReplaceAllString(text, ""))
	if digits == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
