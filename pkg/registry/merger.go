// Package registry performs the idempotent, structural merge of a module's
// registration entry into the shared route registry file. The merge locates
// the entry collection as source structure, never as plain text, so repeated
// runs cannot duplicate entries or damage unrelated formatting.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// Sentinel errors surfaced by the merger.
var (
	// ErrNotFound indicates the registry file does not exist.
	ErrNotFound = errors.New("registry: file not found")
	// ErrMalformed indicates the entry collection could not be located.
	ErrMalformed = errors.New("registry: entry collection not found")
)

// Entry is one module registration.
type Entry struct {
	// Path is the module's URL path segment (the slug).
	Path string
	// BreadcrumbTitle is the human-facing title shown in navigation.
	BreadcrumbTitle string
	// SymbolReference is the module identifier referenced by the entry.
	SymbolReference string
}

// Result reports the merge outcome.
type Result int

const (
	// Inserted means a new entry was appended.
	Inserted Result = iota
	// AlreadyExists means an entry with the same path was already present
	// and the file was left byte-for-byte unchanged.
	AlreadyExists
)

func (r Result) String() string {
	if r == AlreadyExists {
		return "already-exists"
	}
	return "inserted"
}

// Option customises the merger.
type Option func(*Merger)

// WithoutLock disables the advisory file lock, for callers that already
// serialize merges themselves.
func WithoutLock() Option {
	return func(m *Merger) {
		m.lock = false
	}
}

// Merger applies registration entries to a registry file. The read-check-
// append-write sequence runs as one logical transaction under an advisory
// file lock, because two concurrent runs could otherwise both observe "not
// present" and both append.
type Merger struct {
	lock bool
}

// New constructs a Merger applying any provided options.
func New(options ...Option) *Merger {
	m := &Merger{lock: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Merge registers entry in the file at path. Reapplying the same entry is
// always safe: the second call returns AlreadyExists without touching the
// file.
func (m *Merger) Merge(path string, entry Entry) (Result, error) {
	if entry.Path == "" {
		return 0, errors.New("registry: entry path is required")
	}

	if m.lock {
		lock := flock.New(path + ".lock")
		if err := lock.Lock(); err != nil {
			return 0, fmt.Errorf("registry: lock %q: %w", path, err)
		}
		defer lock.Unlock()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("registry: %q: %w", path, ErrNotFound)
		}
		return 0, fmt.Errorf("registry: read %q: %w", path, err)
	}

	updated, result, err := apply(src, entry)
	if err != nil {
		return 0, fmt.Errorf("registry: %q: %w", path, err)
	}
	if result == AlreadyExists {
		return AlreadyExists, nil
	}

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return 0, fmt.Errorf("registry: write %q: %w", path, err)
	}
	return Inserted, nil
}

// apply performs the structural merge on in-memory source. Every byte outside
// the insertion point is preserved.
func apply(src []byte, entry Entry) ([]byte, Result, error) {
	array, ok := findEntryArray(src)
	if !ok {
		return nil, 0, ErrMalformed
	}

	content := array.content(src)
	elements := splitElements(content)
	for _, el := range elements {
		for _, existing := range pathValues(el.text) {
			if existing == entry.Path {
				return nil, AlreadyExists, nil
			}
		}
	}

	quote := quoteStyle(content)
	indent := entryIndent(content, elements)
	literal := entryLiteral(entry, quote)

	insertAt, inserted := insertion(src, array, indent, literal)
	var out strings.Builder
	out.Grow(len(src) + len(inserted))
	out.Write(src[:insertAt])
	out.WriteString(inserted)
	out.Write(src[insertAt:])
	return []byte(out.String()), Inserted, nil
}

// entryLiteral renders the new entry matching the registry's quote style.
func entryLiteral(entry Entry, quote byte) string {
	q := string(quote)
	return "{ path: " + q + entry.Path + q +
		", data: { breadcrumb: " + q + entry.BreadcrumbTitle + q + " }" +
		", loadChildren: " + entry.SymbolReference + "Routes }"
}

// insertion computes where the new entry goes and the exact bytes to splice
// in there. The split lands just after the last entry (or its trailing
// comma), so the whitespace ahead of the closing bracket survives untouched
// and the new entry follows the collection's comma style.
func insertion(src []byte, array arrayLiteral, indent, literal string) (int, string) {
	last := array.close - 1
	for last > array.open && isSpace(src[last]) {
		last--
	}
	if last == array.open {
		// Empty collection: open a line right after the bracket.
		return array.open + 1, "\n" + indent + literal + ",\n"
	}
	if src[last] == ',' {
		return last + 1, "\n" + indent + literal + ","
	}
	return last + 1, ",\n" + indent + literal
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
