package markup

import "path/filepath"

// SourceKind discriminates the supported source locations.
type SourceKind int

const (
	// SourceKindFile addresses a path on the operating system filesystem. The
	// path may name a document or a directory holding one.
	SourceKindFile SourceKind = iota
	// SourceKindFS addresses a path inside a configured fs.FS.
	SourceKindFS
)

// Source identifies where a markup document lives.
type Source interface {
	Location() string
	Kind() SourceKind
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file or directory path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}
