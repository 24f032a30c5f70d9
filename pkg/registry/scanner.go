package registry

import (
	"regexp"
	"strings"
)

// arrayLiteral addresses the registration collection inside the registry
// source: src[open] == '[' and src[close] == ']'.
type arrayLiteral struct {
	open  int
	close int
}

// content returns the text between the brackets.
func (a arrayLiteral) content(src []byte) string {
	return string(src[a.open+1 : a.close])
}

// findEntryArray locates the first array literal whose elements carry a
// `path:` property. The scan is string- and comment-aware so brackets inside
// literals or comments never unbalance the match.
func findEntryArray(src []byte) (arrayLiteral, bool) {
	for i := 0; i < len(src); i++ {
		i = skipNonCode(src, i)
		if i >= len(src) {
			break
		}
		if src[i] != '[' {
			continue
		}
		end, ok := matchBracket(src, i)
		if !ok {
			continue
		}
		literal := arrayLiteral{open: i, close: end}
		if pathPropertyPattern.MatchString(literal.content(src)) {
			return literal, true
		}
		i = end
	}
	return arrayLiteral{}, false
}

// matchBracket returns the index of the ']' matching the '[' at open.
func matchBracket(src []byte, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		i = skipNonCode(src, i)
		if i >= len(src) {
			break
		}
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// skipNonCode advances past any string literal or comment starting at i and
// returns the first index at or after i that is plain code. Escape sequences
// inside strings are honoured.
func skipNonCode(src []byte, i int) int {
	for i < len(src) {
		switch {
		case src[i] == '\'' || src[i] == '"' || src[i] == '`':
			quote := src[i]
			i++
			for i < len(src) && src[i] != quote {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			i++ // closing quote
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i += 2
		default:
			return i
		}
	}
	return i
}

// splitElements splits the array content into its top-level elements,
// returning the offset and text of each. Commas inside nested braces,
// brackets, parens, strings, or comments do not split.
func splitElements(content string) []element {
	var elements []element
	depth := 0
	start := 0
	src := []byte(content)

	flush := func(end int) {
		text := content[start:end]
		if strings.TrimSpace(text) != "" {
			elements = append(elements, element{offset: start, text: text})
		}
		start = end + 1
	}

	for i := 0; i < len(src); i++ {
		i = skipNonCode(src, i)
		if i >= len(src) {
			break
		}
		switch src[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
			}
		}
	}
	if start < len(content) {
		flush(len(content))
	}
	return elements
}

type element struct {
	offset int
	text   string
}

var pathPropertyPattern = regexp.MustCompile(`\bpath\s*:\s*(['"])([^'"]*)['"]`)

// pathValues extracts every path property value from one element's text.
// Comments are stripped first so a commented-out entry sharing an element
// with a live one neither masks it nor counts as a member itself.
func pathValues(text string) []string {
	matches := pathPropertyPattern.FindAllStringSubmatch(stripComments(text), -1)
	values := make([]string, 0, len(matches))
	for _, match := range matches {
		values = append(values, match[2])
	}
	return values
}

// stripComments removes line and block comments while leaving string
// literals, and everything else, byte-for-byte intact.
func stripComments(text string) string {
	var out strings.Builder
	src := []byte(text)
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '\'' || src[i] == '"' || src[i] == '`':
			quote := src[i]
			out.WriteByte(src[i])
			i++
			for i < len(src) && src[i] != quote {
				if src[i] == '\\' && i+1 < len(src) {
					out.WriteByte(src[i])
					i++
				}
				out.WriteByte(src[i])
				i++
			}
			if i < len(src) {
				out.WriteByte(src[i])
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out.WriteByte('\n')
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i++
		default:
			out.WriteByte(src[i])
		}
	}
	return out.String()
}

// quoteStyle reports the quote character used by existing entries, defaulting
// to single quotes. Commented-out entries do not vote.
func quoteStyle(content string) byte {
	match := pathPropertyPattern.FindStringSubmatch(stripComments(content))
	if match != nil && match[1] == `"` {
		return '"'
	}
	return '\''
}

// entryIndent derives the indentation of the last entry so the inserted one
// lines up, defaulting to two spaces.
func entryIndent(content string, elements []element) string {
	if len(elements) == 0 {
		return "  "
	}
	last := elements[len(elements)-1]
	first := last.offset + leadingSpace(last.text)
	lineStart := strings.LastIndexByte(content[:first], '\n') + 1
	for i := lineStart; i < first; i++ {
		if content[i] != ' ' && content[i] != '\t' {
			return "  "
		}
	}
	return content[lineStart:first]
}

func leadingSpace(text string) int {
	return len(text) - len(strings.TrimLeft(text, " \t\r\n"))
}
