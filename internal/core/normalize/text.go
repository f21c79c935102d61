package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// reGoodsPrefix matches an optional ordinal followed by "Hàng hóa, dịch vụ"
// in any accent placement ("hóa", "hoá", "hoa") and its trailing punctuation.
var reGoodsPrefix = regexp.MustCompile(
	`(?i)^(\d+\s+)?h[aàáảãạ]ng\s*h[oòóỏõọ][aàáảãạ][,\s]*d[iìíỉĩị]ch\s*v[uùúủũụ][:,\s]*`,
)

// CleanItemName trims s and strips the goods/services boilerplate from its
// start. Applying it twice gives the same result as applying it once.
func CleanItemName(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	for {
		stripped := reGoodsPrefix.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = strings.TrimSpace(stripped)
	}
}

// Fold lowercases s and removes Vietnamese diacritics, including đ -> d,
// so "Tên hàng" and "ten hang" compare equal.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			switch r {
			case 'đ', 'Đ':
				return 'd'
			}
			return unicode.ToLower(r)
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// ContainsFolded reports whether s contains any of the keywords once both are folded.
func ContainsFolded(s string, keywords ...string) bool {
	f := Fold(s)
	for _, k := range keywords {
		if strings.Contains(f, Fold(k)) {
			return true
		}
	}
	return false
}
