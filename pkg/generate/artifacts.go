package generate

import (
	"path"

	"github.com/goliatone/go-scaffold/pkg/names"
)

// Artifact kind names, used as stable keys into an ArtifactSet.
const (
	ArtifactRouting         = "routing"
	ArtifactModel           = "model"
	ArtifactService         = "service"
	ArtifactFormView        = "form-view"
	ArtifactFormController  = "form-controller"
	ArtifactFormStyles      = "form-styles"
	ArtifactTableView       = "table-view"
	ArtifactTableController = "table-controller"
	ArtifactTableStyles     = "table-styles"
)

// Artifact is one generated text file, addressed relative to the module's
// output directory.
type Artifact struct {
	Kind    string
	Path    string
	Content []byte
}

// ArtifactSet is the staged output of one generation run. Nothing in the set
// touches the filesystem; persistence happens only after every artifact
// generated successfully.
type ArtifactSet struct {
	Module    names.ModuleName
	Artifacts []Artifact
}

// Get returns the artifact with the given kind.
func (s ArtifactSet) Get(kind string) (Artifact, bool) {
	for _, artifact := range s.Artifacts {
		if artifact.Kind == kind {
			return artifact, true
		}
	}
	return Artifact{}, false
}

// artifactPath builds the module-scoped relative path for a file.
func artifactPath(module names.ModuleName, file string) string {
	return path.Join(module.Slug, file)
}
