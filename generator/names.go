package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardanlabs/glgen/parser"
)

// commandPrefix is dropped from command names, since callers already
// qualify them with the package name.
const commandPrefix = "gl"

func toGoName(name string) string {
	if trimmed := strings.TrimPrefix(name, commandPrefix); trimmed != name && startsUpper(trimmed) {
		return trimmed
	}
	return toExported(name)
}

func toExported(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// toConstName keeps the namespace prefix on names that would otherwise
// begin with a digit, such as GL_2D.
func toConstName(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(r) {
		return parser.NamespacePrefix + name
	}
	return name
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
