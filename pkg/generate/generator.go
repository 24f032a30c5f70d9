package generate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/schema"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// FormViewProducer is an alternative source for the form view markup, e.g.
// the remote collaborator in pkg/assist. A producer failure aborts the whole
// generation run.
type FormViewProducer func(ctx context.Context, title string, fields schema.Schema) (string, error)

// Option customises the generator configuration.
type Option func(*Generator)

// WithRenderer injects a custom template renderer.
func WithRenderer(renderer template.Renderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.renderer = renderer
		}
	}
}

// WithTemplatesDir loads artifact templates from a directory instead of the
// embedded bundle.
func WithTemplatesDir(dir string) Option {
	return func(g *Generator) {
		if dir == "" {
			return
		}
		engine, err := template.New(template.WithBaseDir(dir))
		if err != nil {
			g.initErr = fmt.Errorf("generate: configure templates dir: %w", err)
			return
		}
		g.renderer = engine
	}
}

// WithThemeSelector wires a go-theme selector; resolved tokens become CSS
// custom properties in the generated style placeholders.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(g *Generator) {
		g.selector = selector
		g.themeName = name
		g.themeVariant = variant
	}
}

// WithFixtureRows overrides how many placeholder records seed the table.
func WithFixtureRows(rows int) Option {
	return func(g *Generator) {
		if rows > 0 {
			g.fixtureRows = rows
		}
	}
}

// WithFormViewProducer delegates form view markup to an external producer.
func WithFormViewProducer(producer FormViewProducer) Option {
	return func(g *Generator) {
		g.formView = producer
	}
}

// Generator synthesizes the artifact set for one module from its derived
// names and extracted schema. All artifacts are staged in memory; the
// generator never writes files.
type Generator struct {
	renderer     template.Renderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	fixtureRows  int
	formView     FormViewProducer
	initErr      error
}

// New constructs a Generator applying any provided options. The embedded
// template bundle is used unless a renderer is injected.
func New(options ...Option) (*Generator, error) {
	g := &Generator{fixtureRows: defaultFixtureRows}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.initErr != nil {
		return nil, g.initErr
	}

	if g.renderer == nil {
		engine, err := template.New(template.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("generate: configure embedded templates: %w", err)
		}
		g.renderer = engine
	}
	return g, nil
}

// Generate produces every artifact for the module. Artifact order is fixed;
// field order inside each artifact follows schema order.
func (g *Generator) Generate(ctx context.Context, module names.ModuleName, fields schema.Schema) (ArtifactSet, error) {
	if module.Identifier == "" {
		return ArtifactSet{}, errors.New("generate: module name is empty")
	}
	if err := ctx.Err(); err != nil {
		return ArtifactSet{}, err
	}

	data := g.templateData(module, fields)

	stylesheet, err := g.stylesheet()
	if err != nil {
		return ArtifactSet{}, err
	}

	formView, err := g.renderFormView(ctx, module, fields, data)
	if err != nil {
		return ArtifactSet{}, err
	}

	plan := []struct {
		kind     string
		file     string
		template string
	}{
		{ArtifactRouting, module.Slug + "-routing.module.ts", "routing.module.ts"},
		{ArtifactModel, module.Slug + ".model.ts", "model.ts"},
		{ArtifactService, module.Slug + ".service.ts", "service.ts"},
		{ArtifactFormController, module.Slug + "-form.component.ts", "form.component.ts"},
		{ArtifactTableView, module.Slug + "-table.component.html", "table.component.html"},
		{ArtifactTableController, module.Slug + "-table.component.ts", "table.component.ts"},
	}

	set := ArtifactSet{Module: module}
	for _, step := range plan {
		content, err := g.renderer.RenderTemplate(step.template, data)
		if err != nil {
			return ArtifactSet{}, fmt.Errorf("generate: render %s: %w", step.template, err)
		}
		set.Artifacts = append(set.Artifacts, Artifact{
			Kind:    step.kind,
			Path:    artifactPath(module, step.file),
			Content: []byte(content),
		})
	}

	set.Artifacts = append(set.Artifacts,
		Artifact{
			Kind:    ArtifactFormView,
			Path:    artifactPath(module, module.Slug+"-form.component.html"),
			Content: []byte(formView),
		},
		Artifact{
			Kind:    ArtifactFormStyles,
			Path:    artifactPath(module, module.Slug+"-form.component.css"),
			Content: []byte(stylesheet),
		},
		Artifact{
			Kind:    ArtifactTableStyles,
			Path:    artifactPath(module, module.Slug+"-table.component.css"),
			Content: []byte(stylesheet),
		},
	)

	return set, nil
}

func (g *Generator) renderFormView(ctx context.Context, module names.ModuleName, fields schema.Schema, data map[string]any) (string, error) {
	if g.formView != nil {
		view, err := g.formView(ctx, module.Title, fields)
		if err != nil {
			return "", fmt.Errorf("generate: form view producer: %w", err)
		}
		return view, nil
	}

	view, err := g.renderer.RenderTemplate("form.component.html", data)
	if err != nil {
		return "", fmt.Errorf("generate: render form.component.html: %w", err)
	}
	return view, nil
}

// templateData assembles the context every artifact template renders
// against. Angular interpolation strings are precomputed here so templates
// never have to escape braces.
func (g *Generator) templateData(module names.ModuleName, fields schema.Schema) map[string]any {
	fieldViews := make([]map[string]any, 0, len(fields))
	for i, field := range fields {
		fieldViews = append(fieldViews, map[string]any{
			"name":      field.ControlName,
			"label":     field.Label,
			"type":      field.RawType,
			"control":   controlKind(field.RawType),
			"tsType":    tsType(field),
			"tsDefault": tsDefault(field),
			"cell":      "{{ row." + field.ControlName + " }}",
			"addExpr":   addExpression(field, i),
		})
	}

	fixtures := make([]string, 0, g.fixtureRows)
	for row := 1; row <= g.fixtureRows; row++ {
		fixtures = append(fixtures, fixtureRow(module.TypeName, fields, row))
	}

	return map[string]any{
		"module": map[string]any{
			"identifier": module.Identifier,
			"slug":       module.Slug,
			"typeName":   module.TypeName,
			"title":      module.Title,
		},
		"fields":   fieldViews,
		"fixtures": fixtures,
		"nextId":   g.fixtureRows + 1,
	}
}

func controlKind(rawType string) string {
	switch rawType {
	case schema.TypeSelect:
		return "select"
	case schema.TypeTextarea:
		return "textarea"
	default:
		return "input"
	}
}

func tsType(field schema.FieldDescriptor) string {
	if field.Numeric() {
		return "number"
	}
	return "string"
}

func tsDefault(field schema.FieldDescriptor) string {
	if field.Numeric() {
		return "0"
	}
	return "''"
}

func (g *Generator) stylesheet() (string, error) {
	if g.selector == nil {
		return "", nil
	}

	selection, err := g.selector.Select(g.themeName, g.themeVariant)
	if err != nil {
		return "", fmt.Errorf("generate: resolve theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil || len(selection.Manifest.Tokens) == 0 {
		return "", nil
	}
	return tokensToCSS(selection.Manifest.Tokens), nil
}

func tokensToCSS(tokens map[string]string) string {
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out strings.Builder
	out.WriteString(":root {\n")
	for _, key := range keys {
		out.WriteString("  --" + key + ": " + tokens[key] + ";\n")
	}
	out.WriteString("}\n")
	return out.String()
}
