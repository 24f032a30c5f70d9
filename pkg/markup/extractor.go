package markup

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/schema"
)

// legacyAttrs lists the presentational attributes recorded as legacy markers.
var legacyAttrs = []string{"align", "bgcolor", "border", "height", "width", "hspace", "vspace"}

// Option customises the extractor configuration.
type Option func(*Extractor)

// WithLoader injects a custom loader, e.g. one backed by an fs.FS.
func WithLoader(loader *Loader) Option {
	return func(e *Extractor) {
		if loader != nil {
			e.loader = loader
		}
	}
}

// Extractor parses a markup document into an ordered field schema. The parser
// is lenient, so malformed nesting never fails extraction; a document with no
// input-capable elements yields an empty (and valid) schema.
type Extractor struct {
	loader *Loader
}

// New constructs an Extractor applying any provided options.
func New(options ...Option) *Extractor {
	e := &Extractor{loader: NewLoader(LoaderOptions{})}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Extract resolves src, parses it, and returns every input-capable element as
// a field descriptor in document order.
func (e *Extractor) Extract(ctx context.Context, src Source) (schema.Schema, error) {
	data, err := e.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse extracts the field schema from raw document bytes.
func Parse(data []byte) (schema.Schema, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		// html.Parse is tolerant of malformed nesting; a failure here means
		// the reader broke, not the document.
		return nil, fmt.Errorf("markup: parse document: %w", err)
	}

	var fields schema.Schema
	normalizer := names.NewUniqueNormalizer()
	walk(root, func(node *html.Node) {
		if !acceptsValue(node) {
			return
		}
		fields = append(fields, describeField(node, normalizer))
	})
	return fields, nil
}

// walk visits element nodes in document order.
func walk(node *html.Node, visit func(*html.Node)) {
	if node.Type == html.ElementNode {
		visit(node)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// nonValueInputTypes lists the input types that trigger behavior instead of
// accepting a value; they never become fields.
var nonValueInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
	"hidden": true,
}

// acceptsValue reports whether the element represents an input-capable
// control.
func acceptsValue(node *html.Node) bool {
	switch node.DataAtom {
	case atom.Input:
		return !nonValueInputTypes[strings.ToLower(attrValue(node, "type"))]
	case atom.Select, atom.Textarea:
		return true
	default:
		return false
	}
}

func describeField(node *html.Node, normalizer *names.UniqueNormalizer) schema.FieldDescriptor {
	label := labelFor(node)
	field := schema.FieldDescriptor{
		Label:       label,
		RawType:     rawType(node),
		ControlName: normalizer.Name(attrValue(node, "name"), label),
		Legacy:      legacyMarker(node),
	}
	return field
}

// rawType prefers an explicit type attribute, then infers from the element
// kind.
func rawType(node *html.Node) string {
	if explicit := attrValue(node, "type"); explicit != "" {
		return explicit
	}
	switch node.DataAtom {
	case atom.Select:
		return schema.TypeSelect
	case atom.Textarea:
		return schema.TypeTextarea
	default:
		return schema.TypeText
	}
}

func legacyMarker(node *html.Node) *schema.LegacyMarker {
	for _, attr := range legacyAttrs {
		for _, a := range node.Attr {
			if a.Key == attr {
				return &schema.LegacyMarker{Attr: a.Key, Value: a.Val}
			}
		}
	}
	return nil
}

func attrValue(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
