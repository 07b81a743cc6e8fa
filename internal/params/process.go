package params

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// Process applies defaults and coerces present values to their declared
// types, producing the map a template's render function consumes. It must
// only be called after Validate reports the values valid; it never judges
// correctness itself. Parameters with neither a value nor a default stay
// absent from the returned map.
func Process(schemas []Schema, values map[string]any) map[string]any {
	normalized := make(map[string]any, len(schemas))

	for _, schema := range schemas {
		value, present := values[schema.Name]
		if !present || value == nil {
			// Defaults are emitted verbatim, pre-typed by the template
			// author.
			if schema.Default != nil {
				normalized[schema.Name] = schema.Default
			}
			continue
		}
		normalized[schema.Name] = coerce(schema.Type, value)
	}

	return normalized
}

// coerce normalizes a validated value to the canonical Go representation for
// its declared type. Coercion is idempotent and never panics on validated
// input.
func coerce(t Type, value any) any {
	switch t {
	case TypeString:
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	case TypeNumber:
		if n, ok := numericValue(value); ok {
			return n
		}
		return value
	case TypeDecimal:
		return coerceDecimal(value)
	case TypeBoolean:
		if b, ok := value.(bool); ok {
			return b
		}
		return value != nil
	case TypeDate:
		if d, ok := dateValue(value); ok {
			return d
		}
		return value
	case TypeArray:
		if isSequence(value) {
			return toSlice(value)
		}
		return []any{value}
	}
	return value
}

func coerceDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	default:
		if n, ok := numericValue(value); ok {
			return decimal.NewFromFloat(n)
		}
		return decimal.Zero
	}
}

// toSlice converts any slice or array value into []any without copying
// element values that are already interfaces.
func toSlice(value any) []any {
	if s, ok := value.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Exported coercion helpers for callers that accept loosely typed input
// (CLI flags, JSON payloads) and want schema-driven conversion before
// validation.

// FromString converts a raw string into the Go value a schema of type t
// expects. Strings that do not convert are returned unchanged so validation
// can report the mismatch.
func FromString(t Type, raw string) any {
	switch t {
	case TypeNumber, TypeDecimal:
		if d, err := decimal.NewFromString(raw); err == nil {
			if t == TypeDecimal {
				return d
			}
			return d.InexactFloat64()
		}
	case TypeBoolean:
		switch raw {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	case TypeDate:
		if d, ok := dateValue(raw); ok {
			return d
		}
		return raw
	case TypeArray:
		return splitList(raw)
	}
	return raw
}

func splitList(raw string) []any {
	if raw == "" {
		return []any{}
	}
	parts := strings.Split(raw, ",")
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = strings.TrimSpace(part)
	}
	return out
}
