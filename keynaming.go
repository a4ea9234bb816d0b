package regrid

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyNaming defines how column display names
// are mapped to the keys of shaped rows.
type KeyNaming int

const (
	// KeyNamingCamelCase uses Camelize(displayName) as key.
	KeyNamingCamelCase KeyNaming = iota
	// KeyNamingRaw uses the display name unchanged as key.
	KeyNamingRaw
)

// Key returns the row key for a column display name.
func (n KeyNaming) Key(displayName string) string {
	if n == KeyNamingRaw {
		return displayName
	}
	return Camelize(displayName)
}

func (n KeyNaming) String() string {
	if n == KeyNamingRaw {
		return "raw"
	}
	return "camelCase"
}

// ParseKeyNaming parses "raw" or "camelCase" (case insensitive).
// Anything else returns KeyNamingCamelCase and false.
func ParseKeyNaming(s string) (KeyNaming, bool) {
	switch strings.ToLower(s) {
	case "raw":
		return KeyNamingRaw, true
	case "camelcase", "camel":
		return KeyNamingCamelCase, true
	}
	return KeyNamingCamelCase, false
}

func isCamelSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// Camelize returns name in camelCase.
//
// It is the key naming used for row objects by default,
// so a category with the display name "Order Date"
// is found under the key "orderDate" in shaped rows.
//
// Rules:
//   - runs of the separators '-', '_', '.' and white space are removed
//   - the character following a run is upper-cased
//   - the first character of the result is lower-cased
//   - all other characters keep their case, acronyms are not detected
//
// An empty name or a name of only separators returns "".
//
// Example:
//
//	Camelize("Order Date")    // "orderDate"
//	Camelize("first-name")    // "firstName"
//	Camelize("  total__sum ") // "totalSum"
//	Camelize("ID")            // "iD"
func Camelize(name string) string {
	var (
		b         strings.Builder
		upperNext bool
	)
	b.Grow(len(name))
	for _, r := range name {
		if isCamelSeparator(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}
