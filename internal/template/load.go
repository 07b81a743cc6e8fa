package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/graphfoundry/queryforge/internal/params"
)

// FileTemplate is the YAML shape of a template defined on disk. The query
// body is a text/template over the normalized parameter map.
type FileTemplate struct {
	Name       string      `yaml:"name"`
	Purpose    string      `yaml:"purpose"`
	Category   string      `yaml:"category"`
	Tags       []string    `yaml:"tags,omitempty"`
	PainPoint  string      `yaml:"pain_point,omitempty"`
	Parameters []FileParam `yaml:"parameters,omitempty"`
	Query      string      `yaml:"query"`
}

// FileParam is the YAML shape of one parameter schema.
type FileParam struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Default  any      `yaml:"default,omitempty"`
	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty"`
	Examples []string `yaml:"examples,omitempty"`
}

// LoadFile reads and compiles a single template definition from disk.
func LoadFile(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	tmpl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return tmpl, nil
}

// LoadDir loads every .yaml/.yml template in a directory, sorted by name.
// A missing directory yields an empty list, not an error.
func LoadDir(dir string, logger zerolog.Logger) ([]*Template, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Template{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Template{}, nil
		}
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		tmpl, err := LoadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unloadable template")
			continue
		}
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name() < templates[j].Name()
	})

	return templates, nil
}

// Parse compiles YAML template data into an immutable Template whose render
// function executes the query body as a text/template.
func Parse(data []byte) (*Template, error) {
	var file FileTemplate
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal template: %w", err)
	}
	if strings.TrimSpace(file.Query) == "" {
		return nil, fmt.Errorf("template %q has no query body", file.Name)
	}

	schemas := make([]params.Schema, 0, len(file.Parameters))
	for _, p := range file.Parameters {
		schema := params.Schema{
			Name:     p.Name,
			Type:     params.Type(p.Type),
			Required: p.Required,
			Default:  p.Default,
			Examples: p.Examples,
		}
		if p.Min != nil || p.Max != nil || p.Pattern != "" {
			schema.Rule = &params.Rule{Min: p.Min, Max: p.Max, Pattern: p.Pattern}
		}
		schemas = append(schemas, schema)
	}

	body, err := texttemplate.New(file.Name).
		Funcs(queryFuncs).
		Option("missingkey=zero").
		Parse(file.Query)
	if err != nil {
		return nil, fmt.Errorf("parse query body for %q: %w", file.Name, err)
	}

	render := func(p Params, _ *Context) string {
		var out strings.Builder
		if err := body.Execute(&out, p.Map()); err != nil {
			// A compiled body can still fail on a pathological pipeline;
			// surface it inline rather than panicking mid-render.
			return fmt.Sprintf("// render error in %s: %v", file.Name, err)
		}
		return strings.TrimSpace(out.String())
	}

	opts := []Option{WithTags(file.Tags...)}
	if file.PainPoint != "" {
		opts = append(opts, WithPainPoint(file.PainPoint))
	}

	return New(file.Name, file.Purpose, file.Category, schemas, render, opts...)
}

// queryFuncs are the helpers available inside file-defined query bodies.
var queryFuncs = texttemplate.FuncMap{
	"default": defaultValue,
	"quote":   quoteString,
	"date":    formatDate,
}

func defaultValue(def string, value any) string {
	if value == nil {
		return def
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return def
	}
	return text
}

// quoteString wraps a value in single quotes with embedded quotes escaped,
// matching Cypher string literal syntax.
func quoteString(value any) string {
	s := fmt.Sprint(value)
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

func formatDate(value any) string {
	if t, ok := value.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprint(value)
}
