package names

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		token string
		want  ModuleName
	}{
		{
			token: "orderEntry",
			want: ModuleName{
				Identifier: "orderEntry",
				Slug:       "order-entry",
				TypeName:   "OrderEntry",
				Title:      "Order Entry",
			},
		},
		{
			token: "customer profile",
			want: ModuleName{
				Identifier: "customerProfile",
				Slug:       "customer-profile",
				TypeName:   "CustomerProfile",
				Title:      "Customer Profile",
			},
		},
		{
			token: "invoice_line-item",
			want: ModuleName{
				Identifier: "invoiceLineItem",
				Slug:       "invoice-line-item",
				TypeName:   "InvoiceLineItem",
				Title:      "Invoice Line Item",
			},
		},
		{
			token: "user",
			want: ModuleName{
				Identifier: "user",
				Slug:       "user",
				TypeName:   "User",
				Title:      "User",
			},
		},
		{
			token: "",
			want:  ModuleName{},
		},
	}

	for _, tc := range cases {
		got := Derive(tc.token)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Derive(%q) mismatch (-want +got):\n%s", tc.token, diff)
		}
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	tokens := []string{"orderEntry", "Order Entry", "order-entry", "ledger_account_v2"}
	for _, token := range tokens {
		first := Derive(token)
		second := Derive(token)
		if first != second {
			t.Fatalf("Derive(%q) not deterministic: %+v vs %+v", token, first, second)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  string
	}{
		{"First Name", "firstName"},
		{"Email", "email"},
		{"emailAddress", "emailAddress"},
		{"  Shipping   Address ", "shippingAddress"},
		{"date-of-birth", "dateOfBirth"},
		{"Total ($)", "total"},
		{"order #2", "order2"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.label); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestNormalizeProducesIdentifiers(t *testing.T) {
	t.Parallel()

	labels := []string{"First Name", "Email", "A/B Test", "Quantity (kg)", "zip+4"}
	for _, label := range labels {
		got := Normalize(label)
		if !IsIdentifier(got) {
			t.Fatalf("Normalize(%q) = %q, not a valid identifier", label, got)
		}
	}
}

func TestUniqueNormalizerFallbacks(t *testing.T) {
	t.Parallel()

	n := NewUniqueNormalizer()

	if got := n.Name("", "First Name"); got != "firstName" {
		t.Fatalf("expected firstName, got %q", got)
	}
	if got := n.Name("emailAddress", "Email"); got != "emailAddress" {
		t.Fatalf("explicit name should win, got %q", got)
	}
	// Empty label at position 3 falls back to a positional placeholder.
	if got := n.Name("", "!!!"); got != "field3" {
		t.Fatalf("expected field3 placeholder, got %q", got)
	}
	// Leading digit after normalization is not a valid identifier.
	if got := n.Name("", "2nd Line"); got != "field4" {
		t.Fatalf("expected field4 placeholder, got %q", got)
	}
	// Duplicate labels receive an incrementing suffix.
	if got := n.Name("", "First Name"); got != "firstName2" {
		t.Fatalf("expected firstName2, got %q", got)
	}
	if got := n.Name("", "First Name"); got != "firstName3" {
		t.Fatalf("expected firstName3, got %q", got)
	}
	// Invalid explicit names fall through to label normalization.
	if got := n.Name("not valid!", "Last Name"); got != "lastName" {
		t.Fatalf("expected lastName, got %q", got)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"firstName", "First Name"},
		{"email_address", "Email Address"},
		{"sku", "Sku"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Label(tc.name); got != tc.want {
			t.Fatalf("Label(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
