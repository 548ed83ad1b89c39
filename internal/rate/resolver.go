package rate

import "strings"

type alias struct {
	Substring string
	Code      string
}

// aliases are checked in order; the first contained substring wins.
var aliases = []alias{
	{Substring: "دلار", Code: "usd"},
	{Substring: "یورو", Code: "eur"},
	{Substring: "پوند", Code: "gbp"},
	{Substring: "درهم", Code: "aed"},
	{Substring: "لیر", Code: "try"},
}

var codeSeparators = strings.NewReplacer("-", "", "_", "")

// ResolveCode maps free item text to a lowercase code. It never fails; whether the
// code exists is decided at lookup time.
func ResolveCode(itemText string) string {
	text := strings.TrimSpace(itemText)
	for _, a := range aliases {
		if strings.Contains(text, a.Substring) {
			return a.Code
		}
	}
	return strings.ToLower(codeSeparators.Replace(strings.Join(strings.Fields(text), "")))
}
