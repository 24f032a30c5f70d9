package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-scaffold/pkg/schema"
)

// labelStrategy produces a label candidate for a control element. Strategies
// run in order; the first non-empty result wins.
type labelStrategy func(*html.Node) string

// labelStrategies is the ordered fallback chain: preceding sibling label,
// label inside the nearest grouping ancestor, id attribute, placeholder
// attribute. Keeping the chain as data makes each candidate testable alone.
var labelStrategies = []labelStrategy{
	precedingSiblingLabel,
	ancestorGroupLabel,
	attrCandidate("id"),
	attrCandidate("placeholder"),
}

// labelFor resolves the human label for a control, falling back to
// schema.UntitledLabel when every strategy comes up empty.
func labelFor(node *html.Node) string {
	for _, strategy := range labelStrategies {
		if text := strings.TrimSpace(strategy(node)); text != "" {
			return text
		}
	}
	return schema.UntitledLabel
}

// precedingSiblingLabel returns the text of an immediately preceding label
// element, skipping whitespace-only text and comment nodes.
func precedingSiblingLabel(node *html.Node) string {
	for sibling := node.PrevSibling; sibling != nil; sibling = sibling.PrevSibling {
		switch sibling.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(sibling.Data) == "" {
				continue
			}
			return ""
		case html.ElementNode:
			if sibling.DataAtom == atom.Label {
				return textContent(sibling)
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

// groupContainers are the element kinds treated as grouping containers when
// searching for an ancestor-scoped label.
var groupContainers = map[atom.Atom]bool{
	atom.Div:      true,
	atom.Fieldset: true,
	atom.Section:  true,
	atom.Li:       true,
	atom.Td:       true,
	atom.P:        true,
}

// ancestorGroupLabel finds a label element within the nearest grouping
// ancestor of the control.
func ancestorGroupLabel(node *html.Node) string {
	for parent := node.Parent; parent != nil; parent = parent.Parent {
		if parent.Type != html.ElementNode || !groupContainers[parent.DataAtom] {
			continue
		}
		if label := findLabel(parent); label != nil {
			return textContent(label)
		}
		return ""
	}
	return ""
}

func findLabel(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.DataAtom == atom.Label {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findLabel(child); found != nil {
			return found
		}
	}
	return nil
}

func attrCandidate(key string) labelStrategy {
	return func(node *html.Node) string {
		return attrValue(node, key)
	}
}

// textContent concatenates the text nodes below node with whitespace
// collapsed.
func textContent(node *html.Node) string {
	var parts []string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(node)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
