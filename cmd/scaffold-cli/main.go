package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-scaffold/internal/prompt"
	"github.com/goliatone/go-scaffold/pkg/assist"
	"github.com/goliatone/go-scaffold/pkg/config"
	"github.com/goliatone/go-scaffold/pkg/generate"
	"github.com/goliatone/go-scaffold/pkg/names"
	"github.com/goliatone/go-scaffold/pkg/orchestrator"
)

func main() {
	name := flag.String("name", "", "module name token, e.g. orderEntry (prompted when empty)")
	source := flag.String("source", "", "input document: markup file, directory, or OpenAPI spec")
	output := flag.String("output", "", "directory the module folder is created in")
	registryPath := flag.String("registry", "", "route registry file to register the module in")
	assistEndpoint := flag.String("assist", "", "completion service URL for assisted form views")
	configPath := flag.String("config", config.DefaultFileName, "project configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlags(&cfg, *output, *registryPath, *assistEndpoint)

	token := strings.TrimSpace(*name)
	if token == "" {
		token, err = prompt.ModuleToken(ctx, prompt.NewDriver())
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Fatal("Aborted")
			}
			log.Fatalf("Failed to read module name: %v", err)
		}
	}

	if *source == "" {
		log.Fatal("A source document is required (-source)")
	}

	// Regenerating an existing module overwrites its artifacts; confirm
	// before touching the directory.
	target := filepath.Join(cfg.Output, names.Derive(token).Slug)
	if _, statErr := os.Stat(target); statErr == nil {
		ok, err := prompt.ConfirmOverwrite(ctx, prompt.NewDriver(), target)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Fatal("Aborted")
			}
			log.Fatalf("Failed to confirm overwrite: %v", err)
		}
		if !ok {
			log.Fatal("Aborted")
		}
	}

	options, err := buildOptions(cfg)
	if err != nil {
		log.Fatalf("Failed to configure scaffold: %v", err)
	}

	orch := orchestrator.New(options...)
	report, err := orch.Run(ctx, orchestrator.Request{
		Token:     token,
		Source:    *source,
		OutputDir: cfg.Output,
	})
	if err != nil {
		log.Fatalf("Failed to scaffold module: %v", err)
	}

	fmt.Printf("Scaffolded %s (%d files)\n", report.Module.Slug, len(report.Written))
	for _, path := range report.Written {
		fmt.Printf("  %s\n", path)
	}
	if report.Registered {
		fmt.Printf("Registry: %s\n", report.Registry)
	}
}

// applyFlags lets explicit flags win over the configuration file.
func applyFlags(cfg *config.Config, output, registryPath, assistEndpoint string) {
	if output != "" {
		cfg.Output = output
	}
	if registryPath != "" {
		cfg.Registry = registryPath
	}
	if assistEndpoint != "" {
		cfg.Assist.Endpoint = assistEndpoint
	}
}

func buildOptions(cfg config.Config) ([]orchestrator.Option, error) {
	var options []orchestrator.Option
	if cfg.Registry != "" {
		options = append(options, orchestrator.WithRegistryPath(cfg.Registry))
	}
	if cfg.Assist.Endpoint != "" {
		var clientOptions []assist.Option
		if cfg.Assist.Timeout > 0 {
			clientOptions = append(clientOptions, assist.WithTimeout(cfg.Assist.Timeout.Std()))
		}
		client, err := assist.NewHTTPClient(cfg.Assist.Endpoint, clientOptions...)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithAssistClient(client))
	}
	if cfg.Theme.Manifest != "" {
		selector, err := generate.ThemeSelectorFromManifest(cfg.Theme.Manifest)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(selector, cfg.Theme.Name, cfg.Theme.Variant))
	}
	return options, nil
}
