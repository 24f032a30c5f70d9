// Package scaffold generates consistent module scaffolds from loosely
// structured form markup or OpenAPI documents: a model, a service, form and
// table views with controllers, style placeholders, and a routing module,
// plus an idempotent registration in the project's shared route registry.
package scaffold

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scaffold/pkg/assist"
	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/orchestrator"
	"github.com/goliatone/go-scaffold/pkg/registry"
)

// Request aliases the orchestrator request for callers using the root
// package.
type Request = orchestrator.Request

// Report aliases the orchestrator run report.
type Report = orchestrator.Report

// ModuleName carries the four name variants derived from one token.
type ModuleName = names.ModuleName

// RegistryEntry is one module registration in the route registry.
type RegistryEntry = registry.Entry

// New exposes the orchestrator constructor from the top-level module.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate runs the full pipeline with default dependencies: derive names
// from the token, extract the schema from source, write the artifact set
// under outputDir. It is the simplest entry point for callers that want a
// scaffold with no registry registration.
func Generate(ctx context.Context, token, source, outputDir string, options ...orchestrator.Option) (Report, error) {
	return orchestrator.New(options...).Run(ctx, Request{
		Token:     token,
		Source:    source,
		OutputDir: outputDir,
	})
}

// DeriveNames returns the identifier, slug, type name, and title derived
// from token.
func DeriveNames(token string) ModuleName {
	return names.Derive(token)
}

// WithRegistryPath routes each run's registration into the registry file at
// path.
func WithRegistryPath(path string) orchestrator.Option {
	return orchestrator.WithRegistryPath(path)
}

// WithAssistClient delegates form view production to a completion service.
func WithAssistClient(client assist.Client) orchestrator.Option {
	return orchestrator.WithAssistClient(client)
}

// WithThemeSelector passes a go-theme selector through to the generator so
// style placeholders carry the resolved design tokens.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}
