package template

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graphfoundry/queryforge/internal/params"
)

// reportTemplate is the running example: one required date, one optional
// decimal with a default.
func reportTemplate(t *testing.T) *Template {
	t.Helper()

	schemas := []params.Schema{
		{Name: "start", Type: params.TypeDate, Required: true},
		{Name: "threshold", Type: params.TypeDecimal, Required: false, Default: 0},
	}
	tmpl, err := New("report", "Report revenue from a start date.", "revenue", schemas,
		func(p Params, _ *Context) string {
			return "MATCH (t:Transaction) WHERE t.date >= date('" + p.Date("start") +
				"') AND t.amount >= " + p.Decimal("threshold").String() + " RETURN sum(t.amount)"
		},
		WithTags("revenue", "partner"),
		WithPainPoint("Revenue numbers are recomputed by hand."),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tmpl
}

func TestNewRejectsEmptyFields(t *testing.T) {
	render := func(Params, *Context) string { return "" }

	_, err := New("", "", "", nil, render)
	if err == nil {
		t.Fatal("expected definition error")
	}
	var defErr *DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	// All three missing fields reported in one pass.
	if len(defErr.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %v", defErr.Problems)
	}
}

func TestNewRejectsNilRender(t *testing.T) {
	_, err := New("x", "p", "c", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "render function") {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestNewRejectsDuplicateParameterNames(t *testing.T) {
	schemas := []params.Schema{
		{Name: "start", Type: params.TypeDate},
		{Name: "start", Type: params.TypeDate},
	}
	_, err := New("x", "p", "c", schemas, func(Params, *Context) string { return "" })
	if err == nil || !strings.Contains(err.Error(), "duplicate parameter name") {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}

func TestNewRejectsBadParameterSchemas(t *testing.T) {
	schemas := []params.Schema{
		{Name: "", Type: params.TypeString},
		{Name: "x", Type: params.Type("enum")},
	}
	_, err := New("x", "p", "c", schemas, func(Params, *Context) string { return "" })
	if err == nil {
		t.Fatal("expected definition error")
	}
	var defErr *DefinitionError
	if !errors.As(err, &defErr) || len(defErr.Problems) != 2 {
		t.Fatalf("expected both schema problems, got %v", err)
	}
}

func TestGenerateValidInput(t *testing.T) {
	tmpl := reportTemplate(t)

	query, err := tmpl.Generate(map[string]any{"start": "2024-01-01"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(query, "date('2024-01-01')") {
		t.Fatalf("start date not rendered: %q", query)
	}
	if !strings.Contains(query, "t.amount >= 0") {
		t.Fatalf("default threshold not rendered: %q", query)
	}
}

func TestGenerateMissingRequired(t *testing.T) {
	tmpl := reportTemplate(t)

	_, err := tmpl.Generate(map[string]any{}, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(valErr.Result.Errors) != 1 ||
		valErr.Result.Errors[0] != "Required parameter 'start' is missing" {
		t.Fatalf("unexpected errors: %v", valErr.Result.Errors)
	}
}

func TestGenerateTypeMismatch(t *testing.T) {
	tmpl := reportTemplate(t)

	_, err := tmpl.Generate(map[string]any{"start": "2024-01-01", "threshold": "abc"}, nil)
	if err == nil || !strings.Contains(err.Error(), "threshold") {
		t.Fatalf("expected threshold type error, got %v", err)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	tmpl := reportTemplate(t)
	values := map[string]any{"start": "2024-01-01", "threshold": decimal.NewFromInt(100)}

	first, err := tmpl.Generate(values, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := tmpl.Generate(values, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first != second {
		t.Fatalf("rendering not idempotent:\n%q\n%q", first, second)
	}
}

func TestExecuteValid(t *testing.T) {
	tmpl := reportTemplate(t)

	res := tmpl.Execute(map[string]any{"start": "2024-01-01", "extra": 5}, nil)
	if !res.Validation.Valid {
		t.Fatalf("expected valid execution: %v", res.Validation.Errors)
	}
	if res.Query == "" {
		t.Fatal("query must be populated on success")
	}
	if res.ID == "" {
		t.Fatal("execution id missing")
	}
	if res.Timestamp.IsZero() || res.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not set in UTC: %v", res.Timestamp)
	}
	// Extra keys warn, never block.
	if len(res.Validation.Warnings) != 1 || !strings.Contains(res.Validation.Warnings[0], "extra") {
		t.Fatalf("expected extra-parameter warning: %v", res.Validation.Warnings)
	}
	if _, ok := res.Parameters["start"].(time.Time); !ok {
		t.Fatalf("normalized parameters missing typed start: %#v", res.Parameters)
	}
}

func TestExecuteInvalidNeverRenders(t *testing.T) {
	tmpl := reportTemplate(t)

	res := tmpl.Execute(map[string]any{"threshold": "abc"}, nil)
	if res.Validation.Valid {
		t.Fatal("expected invalid execution")
	}
	if res.Query != "" {
		t.Fatalf("query must be empty on validation failure: %q", res.Query)
	}
	if res.Parameters != nil {
		t.Fatalf("parameters must not be normalized on failure: %#v", res.Parameters)
	}
	if len(res.Validation.Errors) != 2 {
		t.Fatalf("expected missing-start and threshold errors: %v", res.Validation.Errors)
	}
}

func TestMetadata(t *testing.T) {
	tmpl := reportTemplate(t)

	meta := tmpl.Metadata()
	if meta.Name != "report" || meta.Category != "revenue" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.ParameterCount != 2 {
		t.Fatalf("expected 2 parameters, got %d", meta.ParameterCount)
	}
	if len(meta.RequiredParams) != 1 || meta.RequiredParams[0] != "start" {
		t.Fatalf("unexpected required params: %v", meta.RequiredParams)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "partner" {
		t.Fatalf("tags should be sorted: %v", meta.Tags)
	}
	if meta.PainPoint == "" {
		t.Fatal("pain point missing")
	}
}
