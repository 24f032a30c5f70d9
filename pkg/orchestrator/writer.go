package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-scaffold/pkg/generate"
)

// Writer persists a staged artifact set under a root directory and returns
// the paths it wrote.
type Writer interface {
	WriteArtifacts(root string, set generate.ArtifactSet) ([]string, error)
}

// FSWriter writes artifacts to the local filesystem, creating the module's
// folder as needed.
type FSWriter struct{}

// NewFSWriter constructs the default filesystem writer.
func NewFSWriter() *FSWriter {
	return &FSWriter{}
}

// WriteArtifacts implements Writer.
func (w *FSWriter) WriteArtifacts(root string, set generate.ArtifactSet) ([]string, error) {
	written := make([]string, 0, len(set.Artifacts))
	for _, artifact := range set.Artifacts {
		target := filepath.Join(root, filepath.FromSlash(artifact.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("orchestrator: create %q: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, artifact.Content, 0o644); err != nil {
			return nil, fmt.Errorf("orchestrator: write %q: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
