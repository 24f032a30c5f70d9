package names

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// ModuleName carries the four derived representations of a module token.
// All four are pure functions of the same source token, so regenerating a
// module always reproduces the same strings.
type ModuleName struct {
	// Identifier is the camelCase symbol name, e.g. "orderEntry".
	Identifier string
	// Slug is the hyphenated lowercase form used in file paths and URL
	// segments, e.g. "order-entry".
	Slug string
	// TypeName is the Identifier with its first letter capitalised, used as
	// the exported type prefix, e.g. "OrderEntry".
	TypeName string
	// Title is the human-facing form, e.g. "Order Entry".
	Title string
}

// Derive expands a raw module token (spaces, hyphens, underscores, and mixed
// case are all accepted) into the four name variants. An empty token yields
// empty variants; callers are expected to reject empty input upstream.
func Derive(token string) ModuleName {
	identifier := Normalize(token)
	return ModuleName{
		Identifier: identifier,
		Slug:       slugify(identifier),
		TypeName:   upperFirst(identifier),
		Title:      titleize(identifier),
	}
}

// Normalize converts a human label into a camelCase identifier. It splits on
// whitespace/hyphen/underscore boundaries and on lower→upper transitions,
// lowercases the first word, capitalises the rest, and strips any character
// outside letters and digits. The result may be empty or start with a digit;
// UniqueNormalizer applies the placeholder fallback in those cases.
func Normalize(label string) string {
	words := splitWordsPattern.Split(label, -1)
	var segments []string
	for _, word := range words {
		for _, part := range strings.Fields(splitCamel(word)) {
			cleaned := stripNonAlnum(part)
			if cleaned == "" {
				continue
			}
			segments = append(segments, cleaned)
		}
	}
	if len(segments) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteString(strings.ToLower(segments[0]))
	for _, segment := range segments[1:] {
		out.WriteString(titleCase(segment))
	}
	return out.String()
}

// Label converts an identifier into a human-friendly label. It splits on
// underscores/dashes and camelCase boundaries.
func Label(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func slugify(identifier string) string {
	var out strings.Builder
	for i, r := range identifier {
		if i > 0 && isUpper(r) && isLower(rune(identifier[i-1])) {
			out.WriteRune('-')
		}
		out.WriteRune(r)
	}
	return strings.ToLower(out.String())
}

func titleize(identifier string) string {
	words := strings.Fields(splitCamel(identifier))
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func stripNonAlnum(s string) string {
	var out strings.Builder
	for _, r := range s {
		if isLetter(r) || isDigit(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
