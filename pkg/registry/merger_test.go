package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRegistry = `import { Routes } from '@angular/router';

import { customerRoutes } from './customer/customer-routing.module';
import { invoiceRoutes } from './invoice/invoice-routing.module';

export const appRoutes: Routes = [
  { path: 'customer', data: { breadcrumb: 'Customer' }, loadChildren: customerRoutes },
  { path: 'invoice', data: { breadcrumb: 'Invoice' }, loadChildren: invoiceRoutes },
];
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.routes.ts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read registry: %v", err)
	}
	return string(data)
}

func entryCount(content string) int {
	return strings.Count(content, "path:")
}

func TestMergeAppendsEntry(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, sampleRegistry)
	entry := Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"}

	result, err := New().Merge(path, entry)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result != Inserted {
		t.Fatalf("expected Inserted, got %v", result)
	}

	updated := readFile(t, path)
	want := "{ path: 'order-entry', data: { breadcrumb: 'Order Entry' }, loadChildren: orderEntryRoutes },"
	if !strings.Contains(updated, want) {
		t.Fatalf("updated registry missing new entry:\n%s", updated)
	}
	if got := entryCount(updated); got != 3 {
		t.Fatalf("expected 3 entries, got %d:\n%s", got, updated)
	}
	// Pre-existing entries survive byte-for-byte.
	for _, line := range []string{
		"{ path: 'customer', data: { breadcrumb: 'Customer' }, loadChildren: customerRoutes },",
		"{ path: 'invoice', data: { breadcrumb: 'Invoice' }, loadChildren: invoiceRoutes },",
	} {
		if !strings.Contains(updated, line) {
			t.Fatalf("existing entry damaged:\n%s", updated)
		}
	}
	if !strings.HasSuffix(updated, "];\n") {
		t.Fatalf("closing bracket formatting damaged:\n%s", updated)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, sampleRegistry)
	entry := Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"}
	merger := New()

	first, err := merger.Merge(path, entry)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if first != Inserted {
		t.Fatalf("first merge: expected Inserted, got %v", first)
	}
	afterFirst := readFile(t, path)

	second, err := merger.Merge(path, entry)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if second != AlreadyExists {
		t.Fatalf("second merge: expected AlreadyExists, got %v", second)
	}

	afterSecond := readFile(t, path)
	if afterFirst != afterSecond {
		t.Fatalf("second merge modified the registry:\n%s", afterSecond)
	}
	if got := entryCount(afterSecond); got != 3 {
		t.Fatalf("entry count = %d, want 3", got)
	}
}

func TestMergeExistingPathLeavesFileUnchanged(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, sampleRegistry)

	result, err := New().Merge(path, Entry{Path: "invoice", BreadcrumbTitle: "Invoice", SymbolReference: "invoice"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result != AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", result)
	}
	if got := readFile(t, path); got != sampleRegistry {
		t.Fatalf("registry changed byte-for-byte:\n%s", got)
	}
}

func TestMergeEmptyCollection(t *testing.T) {
	t.Parallel()

	// A fully empty array carries no path property, so only a commented-out
	// entry can still mark it as the registration collection.
	const empty = `export const appRoutes: Routes = [
  // { path: 'placeholder', data: { breadcrumb: 'Placeholder' } },
];
`
	path := writeRegistry(t, empty)
	result, err := New().Merge(path, Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result != Inserted {
		t.Fatalf("expected Inserted, got %v", result)
	}
	if !strings.Contains(readFile(t, path), "{ path: 'order-entry'") {
		t.Fatalf("entry not inserted into empty collection:\n%s", readFile(t, path))
	}
}

func TestMergeRespectsDoubleQuoteStyle(t *testing.T) {
	t.Parallel()

	const doubleQuoted = `export const appRoutes = [
  { path: "customer", data: { breadcrumb: "Customer" }, loadChildren: customerRoutes },
];
`
	path := writeRegistry(t, doubleQuoted)
	result, err := New().Merge(path, Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result != Inserted {
		t.Fatalf("expected Inserted, got %v", result)
	}
	if !strings.Contains(readFile(t, path), `{ path: "order-entry", data: { breadcrumb: "Order Entry" }, loadChildren: orderEntryRoutes },`) {
		t.Fatalf("inserted entry did not match quote style:\n%s", readFile(t, path))
	}
}

func TestMergeWithoutTrailingComma(t *testing.T) {
	t.Parallel()

	const noTrailing = `export const appRoutes = [
  { path: 'customer', data: { breadcrumb: 'Customer' }, loadChildren: customerRoutes }
];
`
	path := writeRegistry(t, noTrailing)
	if _, err := New().Merge(path, Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	updated := readFile(t, path)
	want := `export const appRoutes = [
  { path: 'customer', data: { breadcrumb: 'Customer' }, loadChildren: customerRoutes },
  { path: 'order-entry', data: { breadcrumb: 'Order Entry' }, loadChildren: orderEntryRoutes }
];
`
	if updated != want {
		t.Fatalf("merge without trailing comma:\ngot:\n%s\nwant:\n%s", updated, want)
	}
}

func TestMergeIgnoresBracketsInStringsAndComments(t *testing.T) {
	t.Parallel()

	const tricky = `// routes registry [do not edit by hand]
/* the collection below is ordered [sic] */
const banner = 'not a [collection]';

export const appRoutes = [
  // { path: 'disabled', data: { breadcrumb: 'Disabled' } },
  { path: 'customer', data: { breadcrumb: 'A, B [C]' }, loadChildren: customerRoutes },
];
`
	path := writeRegistry(t, tricky)
	result, err := New().Merge(path, Entry{Path: "order-entry", BreadcrumbTitle: "Order Entry", SymbolReference: "orderEntry"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result != Inserted {
		t.Fatalf("expected Inserted, got %v", result)
	}

	updated := readFile(t, path)
	if got := strings.Count(updated, "loadChildren: orderEntryRoutes"); got != 1 {
		t.Fatalf("expected exactly one inserted entry, got %d:\n%s", got, updated)
	}
	if !strings.Contains(updated, "// routes registry [do not edit by hand]") {
		t.Fatalf("leading comment damaged:\n%s", updated)
	}
}

func TestMergeSeesEntryBehindCommentedNeighbor(t *testing.T) {
	t.Parallel()

	// The commented-out entry's trailing comma lives inside the comment, so
	// it and the live entry below it land in one element. The live entry
	// must still count as a member, and the commented one must not.
	const registry = `export const appRoutes = [
  // { path: 'disabled', data: { breadcrumb: 'Disabled' } },
  { path: 'customer', data: { breadcrumb: 'Customer' }, loadChildren: customerRoutes },
];
`
	path := writeRegistry(t, registry)
	merger := New()

	result, err := merger.Merge(path, Entry{Path: "customer", BreadcrumbTitle: "Customer", SymbolReference: "customer"})
	if err != nil {
		t.Fatalf("merge existing: %v", err)
	}
	if result != AlreadyExists {
		t.Fatalf("expected AlreadyExists for shadowed entry, got %v", result)
	}
	if got := readFile(t, path); got != registry {
		t.Fatalf("registry changed despite existing entry:\n%s", got)
	}

	result, err = merger.Merge(path, Entry{Path: "disabled", BreadcrumbTitle: "Disabled", SymbolReference: "disabled"})
	if err != nil {
		t.Fatalf("merge commented path: %v", err)
	}
	if result != Inserted {
		t.Fatalf("commented-out entry counted as member, got %v", result)
	}
	if got := strings.Count(readFile(t, path), "loadChildren: disabledRoutes"); got != 1 {
		t.Fatalf("expected one live disabled entry, got %d:\n%s", got, readFile(t, path))
	}
}

func TestMergeErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "absent.routes.ts")
	if _, err := New().Merge(missing, Entry{Path: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	malformed := writeRegistry(t, "export const nothing = 42;\n")
	if _, err := New().Merge(malformed, Entry{Path: "x"}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
