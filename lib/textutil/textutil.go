package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

var nonAmountRegex = regexp.MustCompile(`[^0-9,.\-]`)

// ParseAmount parses a vendor-formatted price string such as
// "123,45 €" or "€ 1.234,56" into a float. The vendor uses a comma
// decimal separator and a dot thousands separator.
func ParseAmount(raw string) (float64, error) {
	s := nonAmountRegex.ReplaceAllString(raw, "")
	if s == "" {
		return 0, fmt.Errorf("no numeric content in price %q", raw)
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return amount, nil
}
