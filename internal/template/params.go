package template

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Params wraps the normalized parameter map handed to a render function.
// Accessors assume the value already passed validation and processing; a
// typed accessor on an absent parameter returns the zero value.
type Params struct {
	values map[string]any
}

// Has reports whether the parameter is present in the normalized map.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// String returns a string parameter, or "" when absent.
func (p Params) String(name string) string {
	if v, ok := p.values[name].(string); ok {
		return v
	}
	return ""
}

// Float returns a number parameter, or 0 when absent.
func (p Params) Float(name string) float64 {
	if v, ok := p.values[name].(float64); ok {
		return v
	}
	return 0
}

// Int returns a number parameter truncated to an int, or 0 when absent.
func (p Params) Int(name string) int {
	return int(p.Float(name))
}

// Decimal returns a decimal parameter, or decimal.Zero when absent.
func (p Params) Decimal(name string) decimal.Decimal {
	if v, ok := p.values[name].(decimal.Decimal); ok {
		return v
	}
	return decimal.Zero
}

// Bool returns a boolean parameter, or false when absent.
func (p Params) Bool(name string) bool {
	if v, ok := p.values[name].(bool); ok {
		return v
	}
	return false
}

// Time returns a date parameter, or the zero time when absent.
func (p Params) Time(name string) time.Time {
	if v, ok := p.values[name].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// Date returns a date parameter formatted as YYYY-MM-DD, or "" when absent.
func (p Params) Date(name string) string {
	t := p.Time(name)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Slice returns an array parameter, or nil when absent.
func (p Params) Slice(name string) []any {
	if v, ok := p.values[name].([]any); ok {
		return v
	}
	return nil
}

// Strings returns an array parameter with every element stringified.
func (p Params) Strings(name string) []string {
	raw := p.Slice(name)
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// Map returns a copy of the underlying normalized map.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
