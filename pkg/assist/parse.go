package assist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// FirstJSONArray locates and parses the first well-formed JSON array inside
// free text. The collaborator habitually wraps structured output in prose or
// code fences, so the scan tries every '[' and accepts the first substring
// that decodes cleanly.
func FirstJSONArray(text string) (json.RawMessage, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		return raw, nil
	}
	return nil, fmt.Errorf("assist: no JSON array in %q: %w", snippet(text), ErrMalformedResponse)
}

var htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// containerElements are the tags accepted as the top-level element of a
// generated fragment.
var containerElements = []string{"form", "div", "section", "fieldset", "table"}

// ExtractFragment strips comment nodes from the response and re-slices it to
// the first top-level container element through its matching closing tag. The
// surviving markup is sanitized before being trusted.
func ExtractFragment(text string) (string, error) {
	cleaned := htmlCommentPattern.ReplaceAllString(text, "")

	for _, tag := range containerElements {
		fragment, ok := sliceElement(cleaned, tag)
		if !ok {
			continue
		}
		return fragmentPolicy().Sanitize(fragment), nil
	}
	return "", fmt.Errorf("assist: no container element in %q: %w", snippet(text), ErrMalformedResponse)
}

// sliceElement returns the substring from the first <tag ...> opening through
// its matching </tag>, tracking nesting depth of the same tag name.
func sliceElement(text, tag string) (string, bool) {
	lower := strings.ToLower(text)
	open := "<" + tag
	closeTag := "</" + tag + ">"

	start := -1
	for i := 0; i < len(lower); {
		idx := strings.Index(lower[i:], open)
		if idx < 0 {
			return "", false
		}
		idx += i
		// Must be a full tag name, not a prefix of a longer one.
		after := idx + len(open)
		if after < len(lower) && lower[after] != '>' && lower[after] != ' ' && lower[after] != '\t' && lower[after] != '\n' && lower[after] != '/' {
			i = after
			continue
		}
		start = idx
		break
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(lower); {
		openIdx := strings.Index(lower[i:], open)
		closeIdx := strings.Index(lower[i:], closeTag)
		if closeIdx < 0 {
			return "", false
		}
		if openIdx >= 0 && openIdx < closeIdx {
			after := i + openIdx + len(open)
			if after >= len(lower) || lower[after] == '>' || lower[after] == ' ' || lower[after] == '\t' || lower[after] == '\n' || lower[after] == '/' {
				depth++
			}
			i += openIdx + len(open)
			continue
		}
		depth--
		end := i + closeIdx + len(closeTag)
		if depth == 0 {
			return text[start:end], true
		}
		i += closeIdx + len(closeTag)
	}
	return "", false
}

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicyInst *bluemonday.Policy
)

// fragmentPolicy allows standard form markup and nothing else. Scripts, event
// handlers, and unknown tags from the collaborator are dropped.
func fragmentPolicy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("form", "fieldset", "legend", "label", "input", "select", "option", "textarea", "button", "section")
		policy.AllowAttrs("type", "name", "id", "placeholder", "value", "for", "rows", "cols", "class").Globally()
		policy.AllowAttrs("action", "method").OnElements("form")
		policy.AllowAttrs("selected").OnElements("option")
		fragmentPolicyInst = policy
	})
	return fragmentPolicyInst
}

func snippet(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 80 {
		return trimmed[:80] + "..."
	}
	return trimmed
}
