// Package template provides the query template contract: a named,
// schema-described recipe rendering query text from validated parameters.
package template

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/graphfoundry/queryforge/internal/params"
)

var (
	// ErrNilRender is returned when a template is constructed without a
	// render function.
	ErrNilRender = errors.New("template render function is required")
)

// DefinitionError reports every structural problem found while constructing
// a template. Definition mistakes are programming errors and surface all at
// once, at definition time.
type DefinitionError struct {
	Template string
	Problems []string
}

func (e *DefinitionError) Error() string {
	name := e.Template
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("invalid template %s: %s", name, strings.Join(e.Problems, "; "))
}

// ValidationError is returned by Generate when caller-supplied values fail
// validation. It carries the full result so callers can fix every problem in
// one pass.
type ValidationError struct {
	Template string
	Result   params.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter validation failed for %s: %s",
		e.Template, strings.Join(e.Result.Errors, "; "))
}

// RenderFunc is a pure mapping from normalized parameters to query text.
// Implementations must not perform I/O, must be deterministic, and may
// assume every required parameter is present and type-correct.
type RenderFunc func(p Params, ctx *Context) string

// Context carries optional render-time settings. It is pure data; templates
// may consult it but never mutate shared state through it.
type Context struct {
	// RowLimit overrides a template's default result cap when positive.
	RowLimit int
}

// Template is an immutable query recipe: a parameter schema list plus a pure
// render function. Construct with New; a Template is safe for unsynchronized
// concurrent use once built.
type Template struct {
	name      string
	purpose   string
	category  string
	tags      map[string]struct{}
	painPoint string
	schemas   []params.Schema
	render    RenderFunc
}

// Option customizes template construction.
type Option func(*Template)

// WithTags attaches discovery tags.
func WithTags(tags ...string) Option {
	return func(t *Template) {
		for _, tag := range tags {
			if tag != "" {
				t.tags[tag] = struct{}{}
			}
		}
	}
}

// WithPainPoint records the business pain point the template addresses.
func WithPainPoint(text string) Option {
	return func(t *Template) {
		t.painPoint = text
	}
}

// New constructs an immutable template. Every structural problem is
// collected and returned as a single DefinitionError: empty name, purpose,
// or category, a nil render function, parameters missing a name or declaring
// an unknown type, and duplicate parameter names all fail construction
// immediately rather than at first use.
func New(name, purpose, category string, schemas []params.Schema, render RenderFunc, opts ...Option) (*Template, error) {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(purpose) == "" {
		problems = append(problems, "purpose is required")
	}
	if strings.TrimSpace(category) == "" {
		problems = append(problems, "category is required")
	}
	if render == nil {
		problems = append(problems, ErrNilRender.Error())
	}

	seen := make(map[string]struct{}, len(schemas))
	for i, schema := range schemas {
		if schema.Name == "" {
			problems = append(problems, fmt.Sprintf("parameter[%d] has no name", i))
			continue
		}
		if !schema.Type.Known() {
			problems = append(problems, fmt.Sprintf("parameter %q has unknown type %q",
				schema.Name, schema.Type))
		}
		if _, dup := seen[schema.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate parameter name %q", schema.Name))
		}
		seen[schema.Name] = struct{}{}
	}

	if len(problems) > 0 {
		return nil, &DefinitionError{Template: name, Problems: problems}
	}

	t := &Template{
		name:     name,
		purpose:  purpose,
		category: category,
		tags:     make(map[string]struct{}),
		schemas:  append([]params.Schema(nil), schemas...),
		render:   render,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the template's unique name.
func (t *Template) Name() string { return t.name }

// Purpose returns the human-readable purpose text.
func (t *Template) Purpose() string { return t.purpose }

// Category returns the template's category.
func (t *Template) Category() string { return t.category }

// PainPoint returns the business pain point text, if any.
func (t *Template) PainPoint() string { return t.painPoint }

// Tags returns the template's tags in lexicographic order.
func (t *Template) Tags() []string {
	tags := make([]string, 0, len(t.tags))
	for tag := range t.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// HasTag reports whether the template carries the given tag.
func (t *Template) HasTag(tag string) bool {
	_, ok := t.tags[tag]
	return ok
}

// Schemas returns a copy of the parameter schemas in declaration order.
func (t *Template) Schemas() []params.Schema {
	return append([]params.Schema(nil), t.schemas...)
}

// Validate checks raw values against the template's schemas without
// rendering.
func (t *Template) Validate(values map[string]any) params.Result {
	return params.Validate(t.schemas, values)
}

// Generate validates and normalizes values, then renders the query. On
// invalid input it returns a ValidationError aggregating every problem;
// it never renders a partial query.
func (t *Template) Generate(values map[string]any, ctx *Context) (string, error) {
	result := params.Validate(t.schemas, values)
	if !result.Valid {
		return "", &ValidationError{Template: t.name, Result: result}
	}
	normalized := params.Process(t.schemas, values)
	return t.render(Params{values: normalized}, ctx), nil
}

// Execute runs the same pipeline as Generate but never fails: the returned
// envelope's Validation field communicates success, and Query is populated
// only when validation passed.
func (t *Template) Execute(values map[string]any, ctx *Context) *ExecutionResult {
	res := &ExecutionResult{
		ID:        uuid.New().String(),
		Template:  t.name,
		Timestamp: time.Now().UTC(),
	}

	res.Validation = params.Validate(t.schemas, values)
	if !res.Validation.Valid {
		return res
	}

	res.Parameters = params.Process(t.schemas, values)
	res.Query = t.render(Params{values: res.Parameters}, ctx)
	return res
}

// Metadata returns a read-only summary of the template used for discovery
// and documentation, never for behavior.
func (t *Template) Metadata() Metadata {
	required := make([]string, 0, len(t.schemas))
	for _, schema := range t.schemas {
		if schema.Required {
			required = append(required, schema.Name)
		}
	}
	return Metadata{
		Name:           t.name,
		Purpose:        t.purpose,
		Category:       t.category,
		Tags:           t.Tags(),
		ParameterCount: len(t.schemas),
		RequiredParams: required,
		PainPoint:      t.painPoint,
	}
}

// Metadata is a serializable summary of a template's static definition.
type Metadata struct {
	Name           string   `json:"name"`
	Purpose        string   `json:"purpose"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	ParameterCount int      `json:"parameter_count"`
	RequiredParams []string `json:"required_parameters"`
	PainPoint      string   `json:"pain_point,omitempty"`
}

// ExecutionResult is the non-throwing envelope produced by Execute. When
// Validation.Valid is false, Query is empty and must not be treated as
// usable output.
type ExecutionResult struct {
	ID         string         `json:"id"`
	Template   string         `json:"template"`
	Query      string         `json:"query,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Validation params.Result  `json:"validation"`
	Timestamp  time.Time      `json:"timestamp"`
}
