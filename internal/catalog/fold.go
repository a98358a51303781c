package catalog

import "golang.org/x/text/cases"

// fold applies full Unicode case folding, so "STRASSE" and "straße" compare
// equal where strings.EqualFold would not. A Caser keeps state, so one is
// built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
