// Package openapi provides an alternate schema extractor for modules whose
// fields are described by an OpenAPI document instead of form markup. The
// first operation (sorted by path, then method) carrying a request body
// supplies the field set.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/schema"
)

// Extensions recognised as OpenAPI documents.
var specExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// IsSpecPath reports whether path looks like an OpenAPI document by
// extension.
func IsSpecPath(path string) bool {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return false
	}
	return specExtensions[strings.ToLower(path[idx:])]
}

// Extractor converts an OpenAPI request-body schema into the scaffold field
// schema. OpenAPI property maps carry no document order, so properties are
// emitted in sorted name order to keep extraction deterministic.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractFile loads the document at path and extracts its field schema.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (schema.Schema, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %q: %w", path, err)
	}
	return e.extract(spec)
}

// ExtractData extracts the field schema from raw document bytes.
func (e *Extractor) ExtractData(ctx context.Context, raw []byte) (schema.Schema, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return e.extract(spec)
}

func (e *Extractor) extract(spec *openapi3.T) (schema.Schema, error) {
	body := firstRequestSchema(spec)
	if body == nil || body.Value == nil {
		return nil, errors.New("openapi: document has no operation with a request body")
	}

	props := body.Value.Properties
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make(schema.Schema, 0, len(keys))
	normalizer := names.NewUniqueNormalizer()
	for _, key := range keys {
		ref := props[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, schema.FieldDescriptor{
			Label:       propertyLabel(ref.Value, key),
			RawType:     fieldType(ref.Value),
			ControlName: normalizer.Name(key, key),
		})
	}
	return fields, nil
}

func firstRequestSchema(spec *openapi3.T) *openapi3.SchemaRef {
	if spec == nil || spec.Paths == nil {
		return nil
	}

	paths := make([]string, 0, spec.Paths.Len())
	for path := range spec.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := spec.Paths.Map()[path]
		if item == nil {
			continue
		}
		methods := make([]string, 0, len(item.Operations()))
		for method := range item.Operations() {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			op := item.Operations()[method]
			if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
				if mt, ok := op.RequestBody.Value.Content[mediaType]; ok && mt.Schema != nil {
					return mt.Schema
				}
			}
		}
	}
	return nil
}

func propertyLabel(src *openapi3.Schema, key string) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	return names.Label(key)
}

func fieldType(src *openapi3.Schema) string {
	switch {
	case len(src.Enum) > 0:
		return schema.TypeSelect
	case typeIs(src, "integer"), typeIs(src, "number"):
		return schema.TypeNumber
	case typeIs(src, "boolean"):
		return schema.TypeCheckbox
	}

	switch src.Format {
	case "date", "date-time":
		return schema.TypeDate
	case "textarea":
		return schema.TypeTextarea
	}
	if src.MaxLength != nil && *src.MaxLength > 255 {
		return schema.TypeTextarea
	}
	return schema.TypeText
}

func typeIs(src *openapi3.Schema, kind string) bool {
	return src.Type != nil && src.Type.Is(kind)
}
