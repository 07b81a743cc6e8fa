package params

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestProcessAppliesDefaultVerbatim(t *testing.T) {
	schemas := []Schema{
		{Name: "threshold", Type: TypeDecimal, Required: false, Default: 0},
		{Name: "region", Type: TypeString, Required: false, Default: "EMEA"},
	}

	normalized := Process(schemas, map[string]any{})

	// Defaults are emitted untouched; no coercion applies.
	if got := normalized["threshold"]; got != 0 {
		t.Fatalf("expected default 0 verbatim, got %#v", got)
	}
	if got := normalized["region"]; got != "EMEA" {
		t.Fatalf("expected default region, got %#v", got)
	}
}

func TestProcessAbsentWithoutDefaultStaysAbsent(t *testing.T) {
	schemas := []Schema{
		{Name: "segment", Type: TypeString, Required: false},
	}

	normalized := Process(schemas, map[string]any{})
	if _, present := normalized["segment"]; present {
		t.Fatal("absent parameter without default must stay absent")
	}
}

func TestProcessCoercions(t *testing.T) {
	schemas := []Schema{
		{Name: "s", Type: TypeString},
		{Name: "n", Type: TypeNumber},
		{Name: "d", Type: TypeDecimal},
		{Name: "b", Type: TypeBoolean},
		{Name: "when", Type: TypeDate},
		{Name: "items", Type: TypeArray},
	}
	values := map[string]any{
		"s":     "text",
		"n":     int(7),
		"d":     2.5,
		"b":     true,
		"when":  "2024-01-01",
		"items": []string{"x", "y"},
	}

	normalized := Process(schemas, values)

	if got := normalized["n"]; got != float64(7) {
		t.Fatalf("number not normalized to float64: %#v", got)
	}
	d, ok := normalized["d"].(decimal.Decimal)
	if !ok || !d.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("decimal not normalized: %#v", normalized["d"])
	}
	when, ok := normalized["when"].(time.Time)
	if !ok || when.Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("date string not parsed: %#v", normalized["when"])
	}
	items, ok := normalized["items"].([]any)
	if !ok || len(items) != 2 || items[0] != "x" {
		t.Fatalf("array not normalized: %#v", normalized["items"])
	}
}

func TestProcessArrayWrapIsIdempotent(t *testing.T) {
	schemas := []Schema{{Name: "items", Type: TypeArray}}

	once := Process(schemas, map[string]any{"items": "solo"})
	wrapped, ok := once["items"].([]any)
	if !ok || !reflect.DeepEqual(wrapped, []any{"solo"}) {
		t.Fatalf("scalar not wrapped: %#v", once["items"])
	}

	twice := Process(schemas, once)
	if !reflect.DeepEqual(twice["items"], wrapped) {
		t.Fatalf("coercion not idempotent: %#v", twice["items"])
	}
}

func TestFromString(t *testing.T) {
	if got := FromString(TypeNumber, "4.5"); got != 4.5 {
		t.Fatalf("number conversion: %#v", got)
	}
	d, ok := FromString(TypeDecimal, "19.99").(decimal.Decimal)
	if !ok || d.String() != "19.99" {
		t.Fatalf("decimal conversion: %#v", d)
	}
	if got := FromString(TypeBoolean, "yes"); got != true {
		t.Fatalf("boolean conversion: %#v", got)
	}
	if _, ok := FromString(TypeDate, "2024-06-01").(time.Time); !ok {
		t.Fatal("date conversion failed")
	}
	items, ok := FromString(TypeArray, "a, b,c").([]any)
	if !ok || !reflect.DeepEqual(items, []any{"a", "b", "c"}) {
		t.Fatalf("array conversion: %#v", items)
	}
	// Unconvertible input passes through for validation to reject.
	if got := FromString(TypeNumber, "abc"); got != "abc" {
		t.Fatalf("bad number should stay raw: %#v", got)
	}
}
