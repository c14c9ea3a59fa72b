package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes a column or class name for fuzzy matching:
// it case-folds to lower and strips separators (_, -, ., spaces).
//
// Examples:
//   - "animal_type" -> "animaltype"
//   - "OneHotEncoder" -> "onehotencoder"
//   - "sklearn.preprocessing" -> "sklearnpreprocessing"
func NormalizeName(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// LastSegment returns the part of a dotted name after the last dot.
// "sklearn.preprocessing.OneHotEncoder" -> "OneHotEncoder".
func LastSegment(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}

	return s
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
