// Package registry provides the in-memory template catalog supporting
// lookup, filtering, and keyword search.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/graphfoundry/queryforge/internal/template"
)

var (
	// ErrDuplicateTemplate is returned when registering a name that
	// already exists. The registry never silently overwrites.
	ErrDuplicateTemplate = errors.New("template already registered")
	// ErrTemplateNotFound is returned when looking up an unknown name.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrNilTemplate is returned when registering a nil template.
	ErrNilTemplate = errors.New("template is required")
)

// Registry is a catalog of templates keyed by unique name. Templates are
// immutable after construction, so lookups stay safe under concurrency; the
// mutex serializes Register and Remove against readers for hosts that load
// templates after startup.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New returns an empty registry. Registries are constructed and passed
// explicitly; there is no package-level instance.
func New() *Registry {
	return &Registry{templates: make(map[string]*template.Template)}
}

// Register adds a template. Registering a name that already exists fails;
// callers wanting replacement must Remove first.
func (r *Registry) Register(t *template.Template) error {
	if t == nil {
		return ErrNilTemplate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.Name())
	}
	r.templates[t.Name()] = t
	return nil
}

// RegisterAll registers each template, stopping at the first failure.
func (r *Registry) RegisterAll(templates ...*template.Template) error {
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the template with the given name.
func (r *Registry) Get(name string) (*template.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Has reports whether a template with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[name]
	return ok
}

// Remove deletes a template by name. Removing an unknown name is a no-op
// returning false.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[name]; !ok {
		return false
	}
	delete(r.templates, name)
	return true
}

// Count returns the number of registered templates.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.templates)
}

// List returns all template names in lexicographic order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCategory returns the templates in a category, ordered by name.
func (r *Registry) ByCategory(category string) []*template.Template {
	return r.filter(func(t *template.Template) bool {
		return t.Category() == category
	})
}

// ByTag returns the templates carrying a tag, ordered by name.
func (r *Registry) ByTag(tag string) []*template.Template {
	return r.filter(func(t *template.Template) bool {
		return t.HasTag(tag)
	})
}

// Search returns templates whose name, purpose, pain-point text, or tags
// contain the keyword, case-insensitively, ordered by name.
func (r *Registry) Search(keyword string) []*template.Template {
	needle := strings.ToLower(keyword)
	return r.filter(func(t *template.Template) bool {
		if strings.Contains(strings.ToLower(t.Name()), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Purpose()), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(t.PainPoint()), needle) {
			return true
		}
		for _, tag := range t.Tags() {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	})
}

func (r *Registry) filter(match func(*template.Template) bool) []*template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*template.Template, 0)
	for _, t := range r.templates {
		if match(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}
