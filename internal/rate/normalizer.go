package rate

import "strings"

// digitFold maps Persian (U+06F0..U+06F9) and Arabic-Indic (U+0660..U+0669) digits to ASCII.
var digitFold = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// Normalize trims, folds non-Latin digits to ASCII and lowercases. It is idempotent.
func Normalize(raw string) string {
	folded := strings.Map(func(r rune) rune {
		if d, ok := digitFold[r]; ok {
			return d
		}
		return r
	}, strings.TrimSpace(raw))
	return strings.ToLower(folded)
}
