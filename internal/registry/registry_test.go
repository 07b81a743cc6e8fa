package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/graphfoundry/queryforge/internal/template"
)

func makeTemplate(t *testing.T, name, category string, tags ...string) *template.Template {
	t.Helper()
	tmpl, err := template.New(name, "Purpose of "+name, category, nil,
		func(template.Params, *template.Context) string { return "RETURN 1" },
		template.WithTags(tags...))
	if err != nil {
		t.Fatalf("New %s: %v", name, err)
	}
	return tmpl
}

func TestRegisterAndGet(t *testing.T) {
	reg := New()
	tmpl := makeTemplate(t, "ping", "ops")

	if err := reg.Register(tmpl); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := reg.Get("ping")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != tmpl {
		t.Fatal("Get returned a different instance")
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	reg := New()
	first := makeTemplate(t, "ping", "ops")
	second := makeTemplate(t, "ping", "ops")

	if err := reg.Register(first); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := reg.Register(second)
	if !errors.Is(err, ErrDuplicateTemplate) {
		t.Fatalf("expected ErrDuplicateTemplate, got %v", err)
	}
	if reg.Count() != 1 {
		t.Fatalf("registry must still hold only the first template, count=%d", reg.Count())
	}
	got, err := reg.Get("ping")
	if err != nil || got != first {
		t.Fatal("first registration must survive the duplicate attempt")
	}
}

func TestRegisterNil(t *testing.T) {
	reg := New()
	if err := reg.Register(nil); !errors.Is(err, ErrNilTemplate) {
		t.Fatalf("expected ErrNilTemplate, got %v", err)
	}
}

func TestGetUnknown(t *testing.T) {
	reg := New()
	if _, err := reg.Get("ghost"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRemoveAndHas(t *testing.T) {
	reg := New()
	if err := reg.Register(makeTemplate(t, "ping", "ops")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !reg.Has("ping") {
		t.Fatal("Has should report the registered template")
	}
	if !reg.Remove("ping") {
		t.Fatal("Remove should report success")
	}
	if reg.Has("ping") || reg.Count() != 0 {
		t.Fatal("template not removed")
	}
	if reg.Remove("ping") {
		t.Fatal("removing an unknown name should report false")
	}
}

func TestListOrdered(t *testing.T) {
	reg := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(makeTemplate(t, name, "ops")); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := reg.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List not lexicographic: %v", got)
	}
}

func TestByCategoryAndTag(t *testing.T) {
	reg := New()
	if err := reg.RegisterAll(
		makeTemplate(t, "rev_b", "revenue", "revenue"),
		makeTemplate(t, "rev_a", "revenue", "revenue", "partner"),
		makeTemplate(t, "churn", "risk", "churn"),
	); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	byCat := reg.ByCategory("revenue")
	if len(byCat) != 2 || byCat[0].Name() != "rev_a" || byCat[1].Name() != "rev_b" {
		t.Fatalf("ByCategory wrong or unordered: %v", names(byCat))
	}

	byTag := reg.ByTag("partner")
	if len(byTag) != 1 || byTag[0].Name() != "rev_a" {
		t.Fatalf("ByTag wrong: %v", names(byTag))
	}
}

func TestSearch(t *testing.T) {
	reg := New()
	if err := reg.RegisterAll(
		makeTemplate(t, "partner_roi", "partners", "revenue", "partner"),
		makeTemplate(t, "churn_risk", "risk", "churn"),
	); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	hits := reg.Search("REVENUE")
	if len(hits) != 1 || hits[0].Name() != "partner_roi" {
		t.Fatalf("case-insensitive tag search failed: %v", names(hits))
	}

	if hits := reg.Search("churn"); len(hits) != 1 || hits[0].Name() != "churn_risk" {
		t.Fatalf("name search failed: %v", names(hits))
	}

	if hits := reg.Search("nothing-matches"); len(hits) != 0 {
		t.Fatalf("expected no hits: %v", names(hits))
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	reg := New()
	if err := reg.RegisterAll(
		makeTemplate(t, "a", "revenue", "revenue"),
		makeTemplate(t, "b", "risk", "churn"),
	); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	before := reg.Count()
	for i := 0; i < 3; i++ {
		reg.ByCategory("revenue")
		reg.ByTag("churn")
		reg.Search("a")
		reg.List()
	}
	if reg.Count() != before {
		t.Fatal("read operations mutated the registry")
	}
	if got := reg.ByCategory("revenue"); len(got) != 1 || got[0].Name() != "a" {
		t.Fatalf("repeated filtering changed results: %v", names(got))
	}
}

func names(templates []*template.Template) []string {
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		out[i] = tmpl.Name()
	}
	return out
}
