package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/schema"
)

const extractPrompt = `Extract every input-capable form field from the markup below.
Respond with a single JSON array; each element must be an object with
"label", "type" and optional "name" keys, in document order.

%s`

// fieldPayload is the shape the collaborator is asked to produce. The payload
// is re-validated field by field; nothing from the response is trusted as-is.
type fieldPayload struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

// SchemaExtractor delegates field extraction to the remote collaborator while
// enforcing the same descriptor invariants as the local parser.
type SchemaExtractor struct {
	client Client
}

// NewSchemaExtractor wires a collaborator client into an extractor.
func NewSchemaExtractor(client Client) *SchemaExtractor {
	return &SchemaExtractor{client: client}
}

// Extract sends the markup to the collaborator and converts the first JSON
// array in its answer into a validated schema.
func (e *SchemaExtractor) Extract(ctx context.Context, markup []byte) (schema.Schema, error) {
	if e.client == nil {
		return nil, fmt.Errorf("assist: client is not configured")
	}

	answer, err := e.client.Complete(ctx, fmt.Sprintf(extractPrompt, markup))
	if err != nil {
		return nil, err
	}

	raw, err := FirstJSONArray(answer)
	if err != nil {
		return nil, err
	}

	var payload []fieldPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("assist: decode field array %q: %w", snippet(string(raw)), ErrMalformedResponse)
	}

	fields := make(schema.Schema, 0, len(payload))
	normalizer := names.NewUniqueNormalizer()
	for _, item := range payload {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			label = schema.UntitledLabel
		}
		rawType := strings.TrimSpace(item.Type)
		if rawType == "" {
			rawType = schema.TypeText
		}
		fields = append(fields, schema.FieldDescriptor{
			Label:       label,
			RawType:     rawType,
			ControlName: normalizer.Name(strings.TrimSpace(item.Name), label),
		})
	}
	return fields, nil
}

const viewPrompt = `Generate an HTML form fragment titled %q with one labeled
control per field described in the JSON below, preserving order. Answer with
markup only, one top-level container element.

%s`

// ViewGenerator asks the collaborator for form view markup. The response is
// stripped of comments, re-sliced to its first container element, and
// sanitized before use.
type ViewGenerator struct {
	client Client
}

// NewViewGenerator wires a collaborator client into a view generator.
func NewViewGenerator(client Client) *ViewGenerator {
	return &ViewGenerator{client: client}
}

// FormView produces the form view markup for the given module title and
// schema.
func (g *ViewGenerator) FormView(ctx context.Context, title string, fields schema.Schema) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("assist: client is not configured")
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("assist: encode schema: %w", err)
	}

	answer, err := g.client.Complete(ctx, fmt.Sprintf(viewPrompt, title, encoded))
	if err != nil {
		return "", err
	}
	return ExtractFragment(answer)
}
