package markup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors surfaced by the loader. Wrapped errors always name the
// offending path.
var (
	// ErrNotFound indicates the source path does not exist.
	ErrNotFound = errors.New("markup: source not found")
	// ErrInvalidInput indicates the path is neither a markup document nor a
	// directory containing one.
	ErrInvalidInput = errors.New("markup: not a markup document")
)

var markupExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading SourceKindFS sources; nil disables them.
	FileSystem fs.FS
}

// Loader resolves a Source to document bytes. Directory sources resolve to
// the first entry, in lexical listing order, whose extension marks it as
// markup.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader from pre-resolved options.
func NewLoader(options LoaderOptions) *Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the document addressed by src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("markup loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		return l.loadFile(src.Location())
	case SourceKindFS:
		return l.loadFromFS(src.Location())
	default:
		return nil, errors.New("markup loader: unsupported source kind")
	}
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("markup loader: %q: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("markup loader: stat %q: %w", path, err)
	}

	if info.IsDir() {
		resolved, err := firstDocument(path)
		if err != nil {
			return nil, err
		}
		path = resolved
	} else if !isMarkupPath(path) {
		return nil, fmt.Errorf("markup loader: %q: %w", path, ErrInvalidInput)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markup loader: read %q: %w", path, err)
	}
	return data, nil
}

func (l *Loader) loadFromFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("markup loader: filesystem is not configured")
	}
	if !isMarkupPath(name) {
		return nil, fmt.Errorf("markup loader: %q: %w", name, ErrInvalidInput)
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("markup loader: %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("markup loader: read %q: %w", name, err)
	}
	return data, nil
}

// firstDocument picks the first markup file inside dir by lexical listing
// order.
func firstDocument(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("markup loader: list %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isMarkupPath(entry.Name()) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("markup loader: no markup document in %q: %w", dir, ErrInvalidInput)
}

func isMarkupPath(path string) bool {
	return markupExtensions[strings.ToLower(filepath.Ext(path))]
}
