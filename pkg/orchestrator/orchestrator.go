// Package orchestrator coordinates the full scaffold pipeline: derive the
// module's name variants, extract the field schema from the input source,
// generate the artifact set, persist it, and merge the route registration
// into the shared registry.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scaffold/pkg/assist"
	"github.com/goliatone/go-scaffold/pkg/generate"
	"github.com/goliatone/go-scaffold/pkg/markup"
	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/openapi"
	"github.com/goliatone/go-scaffold/pkg/registry"
	"github.com/goliatone/go-scaffold/pkg/schema"
)

// Extractor produces a field schema from a source path. The orchestrator
// picks one per request based on the source's extension.
type Extractor interface {
	Extract(ctx context.Context, source string) (schema.Schema, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, source string) (schema.Schema, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, source string) (schema.Schema, error) {
	return f(ctx, source)
}

// Merger registers a module entry in the registry file.
type Merger interface {
	Merge(path string, entry registry.Entry) (registry.Result, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithMarkupExtractor injects the extractor used for markup sources.
func WithMarkupExtractor(extractor Extractor) Option {
	return func(o *Orchestrator) {
		o.markupExtractor = extractor
	}
}

// WithSpecExtractor injects the extractor used for OpenAPI sources.
func WithSpecExtractor(extractor Extractor) Option {
	return func(o *Orchestrator) {
		o.specExtractor = extractor
	}
}

// WithGenerator injects a pre-configured artifact generator.
func WithGenerator(generator *generate.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

// WithWriter injects the artifact writer. The default writes to the local
// filesystem.
func WithWriter(writer Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// WithRegistryMerger injects the registry merger.
func WithRegistryMerger(merger Merger) Option {
	return func(o *Orchestrator) {
		o.merger = merger
	}
}

// WithRegistryPath sets the registry file that receives the module's route
// registration. When empty, the registration step is skipped.
func WithRegistryPath(path string) Option {
	return func(o *Orchestrator) {
		o.registryPath = path
	}
}

// WithAssistClient wires a completion client into the pipeline. The form
// view is then produced by the assistant instead of the built-in template,
// with generation failing fast when the assistant's answer is unusable.
func WithAssistClient(client assist.Client) Option {
	return func(o *Orchestrator) {
		o.assistClient = client
	}
}

// WithAssistExtraction delegates markup schema extraction to the completion
// client as well: the source document is loaded locally and handed to the
// assistant instead of the local parser. Requires WithAssistClient.
func WithAssistExtraction() Option {
	return func(o *Orchestrator) {
		o.assistExtract = true
	}
}

// WithThemeSelector forwards a theme selection to the default generator so
// style placeholders carry the theme's design tokens.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// Orchestrator runs the scaffold pipeline. Missing dependencies are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	markupExtractor Extractor
	specExtractor   Extractor
	generator       *generate.Generator
	writer          Writer
	merger          Merger
	registryPath    string
	assistClient    assist.Client
	assistExtract   bool
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one scaffold run.
type Request struct {
	// Token is the module name token all four name variants derive from.
	Token string

	// Source is the path to the input document: a markup file, a directory
	// holding one, or an OpenAPI spec.
	Source string

	// OutputDir is the directory the module's artifact folder is created in.
	OutputDir string
}

// Report summarises a completed run.
type Report struct {
	// Module carries the derived name variants.
	Module names.ModuleName

	// Written lists the artifact paths persisted under the output directory.
	Written []string

	// Registry holds the merge outcome. Only meaningful when Registered is
	// true.
	Registry registry.Result

	// Registered reports whether a registry merge was attempted.
	Registered bool
}

// Run executes the pipeline. Artifacts are staged in memory first, so a
// failure anywhere before persistence leaves the output directory and the
// registry untouched.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Report{}, err
	}
	if req.Token == "" {
		return Report{}, errors.New("orchestrator: module name token is required")
	}
	if !names.IsIdentifier(req.Token) {
		return Report{}, fmt.Errorf("orchestrator: module name %q is not a valid identifier", req.Token)
	}
	if req.Source == "" {
		return Report{}, errors.New("orchestrator: source is required")
	}

	module := names.Derive(req.Token)

	fields, err := o.extractorFor(req.Source).Extract(ctx, req.Source)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: extract schema: %w", err)
	}

	set, err := o.generator.Generate(ctx, module, fields)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: generate artifacts: %w", err)
	}

	written, err := o.writer.WriteArtifacts(req.OutputDir, set)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: persist artifacts: %w", err)
	}

	report := Report{Module: module, Written: written}

	if o.registryPath != "" {
		entry := registry.Entry{
			Path:            module.Slug,
			BreadcrumbTitle: module.Title,
			SymbolReference: module.Identifier,
		}
		result, err := o.merger.Merge(o.registryPath, entry)
		if err != nil {
			return Report{}, fmt.Errorf("orchestrator: register module: %w", err)
		}
		report.Registry = result
		report.Registered = true
	}

	return report, nil
}

// extractorFor picks the schema extractor by source extension. OpenAPI specs
// go through the spec extractor, everything else through the markup one.
func (o *Orchestrator) extractorFor(source string) Extractor {
	if openapi.IsSpecPath(source) {
		return o.specExtractor
	}
	return o.markupExtractor
}

func (o *Orchestrator) applyDefaults() {
	if o.markupExtractor == nil {
		if o.assistExtract && o.assistClient != nil {
			loader := markup.NewLoader(markup.LoaderOptions{})
			remote := assist.NewSchemaExtractor(o.assistClient)
			o.markupExtractor = ExtractorFunc(func(ctx context.Context, source string) (schema.Schema, error) {
				data, err := loader.Load(ctx, markup.SourceFromFile(source))
				if err != nil {
					return nil, err
				}
				return remote.Extract(ctx, data)
			})
		} else {
			extractor := markup.New()
			o.markupExtractor = ExtractorFunc(func(ctx context.Context, source string) (schema.Schema, error) {
				return extractor.Extract(ctx, markup.SourceFromFile(source))
			})
		}
	}
	if o.specExtractor == nil {
		extractor := openapi.New()
		o.specExtractor = ExtractorFunc(func(ctx context.Context, source string) (schema.Schema, error) {
			return extractor.ExtractFile(ctx, source)
		})
	}
	if o.generator == nil {
		var options []generate.Option
		if o.themeSelector != nil {
			options = append(options, generate.WithThemeSelector(o.themeSelector, o.themeName, o.themeVariant))
		}
		if o.assistClient != nil {
			views := assist.NewViewGenerator(o.assistClient)
			options = append(options, generate.WithFormViewProducer(views.FormView))
		}
		generator, err := generate.New(options...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default generator: %w", err)
			return
		}
		o.generator = generator
	}
	if o.writer == nil {
		o.writer = NewFSWriter()
	}
	if o.merger == nil {
		o.merger = registry.New()
	}
}
