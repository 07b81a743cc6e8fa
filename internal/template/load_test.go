package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const sampleTemplateYAML = `name: regional_revenue
purpose: Sum revenue for one region.
category: revenue
tags: [revenue, region]
pain_point: Regional numbers are assembled by hand.
parameters:
  - name: region
    type: string
    required: true
    min: 2
    examples: ["EMEA"]
  - name: min_amount
    type: number
    required: false
    default: 0
query: |
  MATCH (c:Customer {region: {{quote .region}}})-[:MADE]->(t:Transaction)
  WHERE t.amount >= {{.min_amount}}
  RETURN sum(t.amount) AS revenue
`

func TestParseFileTemplate(t *testing.T) {
	tmpl, err := Parse([]byte(sampleTemplateYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tmpl.Name() != "regional_revenue" || tmpl.Category() != "revenue" {
		t.Fatalf("unexpected identity: %s / %s", tmpl.Name(), tmpl.Category())
	}
	if !tmpl.HasTag("region") {
		t.Fatal("tags not carried over")
	}

	schemas := tmpl.Schemas()
	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}
	if schemas[0].Rule == nil || schemas[0].Rule.Min == nil || *schemas[0].Rule.Min != 2 {
		t.Fatalf("min constraint not mapped: %+v", schemas[0].Rule)
	}
}

func TestParsedTemplateRenders(t *testing.T) {
	tmpl, err := Parse([]byte(sampleTemplateYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	query, err := tmpl.Generate(map[string]any{"region": "EMEA"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(query, "{region: 'EMEA'}") {
		t.Fatalf("region not quoted into query: %q", query)
	}
	if !strings.Contains(query, "t.amount >= 0") {
		t.Fatalf("default not rendered: %q", query)
	}
}

func TestParsedTemplateValidates(t *testing.T) {
	tmpl, err := Parse([]byte(sampleTemplateYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, err = tmpl.Generate(map[string]any{"region": "E"}, nil)
	if err == nil || !strings.Contains(err.Error(), "at least 2 characters") {
		t.Fatalf("expected length violation, got %v", err)
	}
}

func TestParseRejectsEmptyQuery(t *testing.T) {
	_, err := Parse([]byte("name: broken\npurpose: p\ncategory: c\nquery: \"\"\n"))
	if err == nil || !strings.Contains(err.Error(), "no query body") {
		t.Fatalf("expected empty-body error, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("b.yaml", "name: beta\npurpose: p\ncategory: c\nquery: RETURN 1\n")
	write("a.yaml", "name: alpha\npurpose: p\ncategory: c\nquery: RETURN 2\n")
	write("broken.yaml", "name: [\n")
	write("notes.txt", "ignored")

	templates, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].Name() != "alpha" || templates[1].Name() != "beta" {
		t.Fatalf("templates not sorted by name: %s, %s",
			templates[0].Name(), templates[1].Name())
	}
}

func TestLoadDirMissing(t *testing.T) {
	templates, err := LoadDir(filepath.Join(t.TempDir(), "absent"), zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected empty result, got %d", len(templates))
	}
}
