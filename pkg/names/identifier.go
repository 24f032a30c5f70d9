package names

import (
	"regexp"
	"strconv"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// placeholderPrefix seeds generated control names when a label normalises to
// nothing usable.
const placeholderPrefix = "field"

// IsIdentifier reports whether s is a safe control identifier: non-empty,
// starting with a letter, containing only letters and digits.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// UniqueNormalizer derives control names that are valid identifiers and unique
// within a single extraction pass. It is stateful and not safe for concurrent
// use; create one per schema.
type UniqueNormalizer struct {
	used     map[string]int
	position int
}

// NewUniqueNormalizer returns a normalizer with no names reserved.
func NewUniqueNormalizer() *UniqueNormalizer {
	return &UniqueNormalizer{used: make(map[string]int)}
}

// Name resolves the control name for one field. An explicit machine name wins
// when it is already a valid identifier; otherwise the label is normalised.
// Empty or digit-leading results fall back to a positional placeholder, and
// duplicates within the schema receive an incrementing suffix.
func (n *UniqueNormalizer) Name(explicit, label string) string {
	n.position++

	candidate := explicit
	if !IsIdentifier(candidate) {
		candidate = Normalize(label)
	}
	if candidate == "" || isDigit(rune(candidate[0])) {
		candidate = placeholderPrefix + strconv.Itoa(n.position)
	}
	return n.reserve(candidate)
}

func (n *UniqueNormalizer) reserve(candidate string) string {
	if _, taken := n.used[candidate]; !taken {
		n.used[candidate] = 0
		return candidate
	}

	for {
		n.used[candidate]++
		suffixed := candidate + strconv.Itoa(n.used[candidate]+1)
		if _, taken := n.used[suffixed]; taken {
			continue
		}
		n.used[suffixed] = 0
		return suffixed
	}
}
