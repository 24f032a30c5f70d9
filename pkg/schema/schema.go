// Package schema defines the field descriptor model shared by every stage of
// the scaffold pipeline. Extractors produce a Schema at the parsing boundary
// and downstream consumers operate on this validated shape only.
package schema

// Field kind values recorded in FieldDescriptor.RawType. Explicit type
// attributes from the source markup pass through verbatim; these constants
// cover the inferred defaults.
const (
	TypeText     = "text"
	TypeNumber   = "number"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeDate     = "date"
)

// UntitledLabel is recorded when no label candidate yields text.
const UntitledLabel = "Untitled"

// LegacyMarker flags that a source element carried a recognised legacy
// presentational attribute. Informational only; generation ignores it.
type LegacyMarker struct {
	Attr  string `json:"attr"`
	Value string `json:"value"`
}

// FieldDescriptor describes one input-capable element discovered in a source
// document. Instances are immutable after extraction.
type FieldDescriptor struct {
	// Label is the human-readable field label, "Untitled" when none was
	// discoverable.
	Label string `json:"label"`
	// RawType is the element kind: an explicit type attribute when present,
	// otherwise inferred from the element ("select", "textarea", "text").
	RawType string `json:"rawType"`
	// ControlName is a valid identifier, unique within its schema, taken from
	// an explicit machine-name attribute or derived from Label.
	ControlName string `json:"controlName"`
	// Legacy is set when the element used a recognised legacy styling
	// attribute.
	Legacy *LegacyMarker `json:"legacyMarker,omitempty"`
}

// Numeric reports whether the field holds numeric values, which drives the
// deterministic fixture convention during generation.
func (f FieldDescriptor) Numeric() bool {
	switch f.RawType {
	case TypeNumber, "range":
		return true
	default:
		return false
	}
}

// Schema is the ordered field sequence extracted from one document. Ordering
// is document order and is preserved through every generated artifact.
type Schema []FieldDescriptor

// ControlNames returns the control names in schema order.
func (s Schema) ControlNames() []string {
	out := make([]string, 0, len(s))
	for _, field := range s {
		out = append(out, field.ControlName)
	}
	return out
}
