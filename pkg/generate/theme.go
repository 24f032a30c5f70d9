package generate

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ThemeSelectorFromManifest loads a theme manifest from a YAML file and
// returns a selector serving that single theme. Variant selections overlay
// the variant's tokens on top of the base set.
func ThemeSelectorFromManifest(path string) (theme.ThemeSelector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("generate: read theme manifest %q: %w", path, err)
	}
	manifest := &theme.Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("generate: parse theme manifest %q: %w", path, err)
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("generate: theme manifest %q has no name", path)
	}
	return &manifestSelector{manifest: manifest}, nil
}

type manifestSelector struct {
	manifest *theme.Manifest
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("generate: theme %q not available, manifest holds %q", name, s.manifest.Name)
	}

	tokens := make(map[string]string, len(s.manifest.Tokens))
	for k, v := range s.manifest.Tokens {
		tokens[k] = v
	}
	if variant != "" {
		v, ok := s.manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("generate: theme %q has no variant %q", s.manifest.Name, variant)
		}
		for k, value := range v.Tokens {
			tokens[k] = value
		}
	}

	resolved := &theme.Manifest{
		Name:    s.manifest.Name,
		Version: s.manifest.Version,
		Tokens:  tokens,
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: resolved,
	}, nil
}
