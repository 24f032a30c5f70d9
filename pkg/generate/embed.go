package generate

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded artifact templates so callers can reuse or
// extend them without re-creating the bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen; fall back to the raw FS so templates stay
		// reachable under their prefixed names.
		return embeddedTemplates
	}
	return sub
}
