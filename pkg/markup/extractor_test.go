package markup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scaffold/pkg/schema"
)

func TestParseLabeledInputs(t *testing.T) {
	t.Parallel()

	const document = `
<form>
  <label>First Name</label>
  <input type="text">
  <label>Email</label>
  <input type="text" name="emailAddress">
</form>`

	fields, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	want := schema.Schema{
		{Label: "First Name", RawType: "text", ControlName: "firstName"},
		{Label: "Email", RawType: "text", ControlName: "emailAddress"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLabelFallbackChain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		document string
		want     string
	}{
		{
			name:     "preceding sibling label",
			document: `<label>Quantity</label><input>`,
			want:     "Quantity",
		},
		{
			name:     "ancestor group label",
			document: `<div><label>Shipping Address</label><span><input></span></div>`,
			want:     "Shipping Address",
		},
		{
			name:     "id attribute",
			document: `<input id="customerCode">`,
			want:     "customerCode",
		},
		{
			name:     "placeholder attribute",
			document: `<input placeholder="Search terms">`,
			want:     "Search terms",
		},
		{
			name:     "untitled",
			document: `<input>`,
			want:     "Untitled",
		},
		{
			name:     "whitespace-only label falls through",
			document: `<label>   </label><input id="fallbackId">`,
			want:     "fallbackId",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fields, err := Parse([]byte(tc.document))
			if err != nil {
				t.Fatalf("parse document: %v", err)
			}
			if len(fields) != 1 {
				t.Fatalf("expected one field, got %d", len(fields))
			}
			if fields[0].Label != tc.want {
				t.Fatalf("label = %q, want %q", fields[0].Label, tc.want)
			}
		})
	}
}

func TestParseInfersRawType(t *testing.T) {
	t.Parallel()

	const document = `
<label>Notes</label><textarea></textarea>
<label>Country</label><select><option>US</option></select>
<label>Age</label><input type="number">
<label>Nickname</label><input>`

	fields, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	wantTypes := []string{"textarea", "select", "number", "text"}
	if len(fields) != len(wantTypes) {
		t.Fatalf("expected %d fields, got %d", len(wantTypes), len(fields))
	}
	for i, want := range wantTypes {
		if fields[i].RawType != want {
			t.Fatalf("field %d rawType = %q, want %q", i, fields[i].RawType, want)
		}
	}
}

func TestParseSkipsButtonLikeInputs(t *testing.T) {
	t.Parallel()

	const document = `
<label>First Name</label><input type="text">
<input type="hidden" name="csrf" value="token">
<label>Notes</label><textarea></textarea>
<input type="submit" value="Save">
<input type="button" value="Cancel">
<input type="reset" value="Reset">
<input type="image" src="go.png">`

	fields, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	want := []string{"firstName", "notes"}
	if diff := cmp.Diff(want, fields.ControlNames()); diff != "" {
		t.Fatalf("button-like inputs extracted (-want +got):\n%s", diff)
	}
}

func TestParsePreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	const document = `
<label>Alpha</label><input>
<label>Bravo</label><input>
<label>Charlie</label><input>`

	first, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	second, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	want := []string{"alpha", "bravo", "charlie"}
	if diff := cmp.Diff(want, first.ControlNames()); diff != "" {
		t.Fatalf("control order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated extraction differs (-first +second):\n%s", diff)
	}
}

func TestParseRecordsLegacyMarker(t *testing.T) {
	t.Parallel()

	const document = `<label>Amount</label><input align="right" type="number">`

	fields, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}
	want := &schema.LegacyMarker{Attr: "align", Value: "right"}
	if diff := cmp.Diff(want, fields[0].Legacy); diff != "" {
		t.Fatalf("legacy marker mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocumentYieldsEmptySchema(t *testing.T) {
	t.Parallel()

	fields, err := Parse([]byte(`<p>No inputs here.</p>`))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("expected empty schema, got %d fields", len(fields))
	}
}

func TestParseToleratesMalformedNesting(t *testing.T) {
	t.Parallel()

	const document = `<div><label>Broken</label><input><p><select><option>x`

	fields, err := Parse([]byte(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected two fields, got %d", len(fields))
	}
}

func TestExtractDirectoryPicksFirstDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "not markup")
	writeFile(t, filepath.Join(dir, "b.html"), `<label>Second</label><input>`)
	writeFile(t, filepath.Join(dir, "a.html"), `<label>First</label><input>`)

	fields, err := New().Extract(context.Background(), SourceFromFile(dir))
	if err != nil {
		t.Fatalf("extract from directory: %v", err)
	}
	if len(fields) != 1 || fields[0].Label != "First" {
		t.Fatalf("expected field from a.html, got %+v", fields)
	}
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), "no markup here")

	ctx := context.Background()

	_, err := New().Extract(ctx, SourceFromFile(filepath.Join(dir, "missing.html")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = New().Extract(ctx, SourceFromFile(filepath.Join(dir, "readme.md")))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-markup file, got %v", err)
	}

	_, err = New().Extract(ctx, SourceFromFile(dir))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for directory without markup, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
