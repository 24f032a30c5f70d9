package scaffold

import (
	"io/fs"

	"github.com/goliatone/go-scaffold/pkg/generate"
)

// EmbeddedTemplates returns the artifact templates bundled with the module,
// useful as a starting point for callers that want to customise rendering
// with their own template directory.
func EmbeddedTemplates() fs.FS {
	return generate.TemplatesFS()
}
