// Package components holds the small, pure helpers used while resolving and
// rendering a schema: the scalar type table and the identifier filters.
package components

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reservedWords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
}

// ReservedPrefix is prepended to identifiers that collide with a reserved word.
const ReservedPrefix = "_"

const typeSeparator = "."

var underscoreLetter = regexp.MustCompile(`_[a-zA-Z]`)

// FirstLetterInUpperCase capitalizes the first letter of a string.
func FirstLetterInUpperCase(s string) string {
	return mapFirstRune(s, unicode.ToUpper)
}

// FirstLetterInLowerCase lowercases the first letter of a string.
func FirstLetterInLowerCase(s string) string {
	return mapFirstRune(s, unicode.ToLower)
}

func mapFirstRune(s string, fn func(rune) rune) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(fn(r)) + s[size:]
}

// CamelCase turns every "_x" segment into "X": "user_name" becomes "userName".
// Underscores not followed by a letter are kept.
func CamelCase(s string) string {
	return underscoreLetter.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// AvoidReservedWords prefixes s with ReservedPrefix when it is a reserved word.
func AvoidReservedWords(s string) string {
	if _, ok := reservedWords[s]; ok {
		return ReservedPrefix + s
	}
	return s
}

// GuardTypeName applies AvoidReservedWords to every segment of a dotted
// type reference: "class.enum" becomes "_class._enum".
func GuardTypeName(s string) string {
	segments := strings.Split(s, typeSeparator)
	for i, seg := range segments {
		segments[i] = AvoidReservedWords(seg)
	}
	return strings.Join(segments, typeSeparator)
}
