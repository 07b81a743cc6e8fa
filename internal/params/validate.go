package params

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of validating a value map against a schema list.
// Valid is true iff Errors is empty; Warnings are advisory and never block
// rendering.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// dateLayouts are the accepted formats for date parameters given as strings,
// tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Validate checks values against schemas in declaration order and returns
// every problem found. A missing required parameter or a type mismatch stops
// further checks for that parameter only; rule checks run solely on values
// whose type check passed. Keys not covered by any schema produce a warning,
// never an error.
func Validate(schemas []Schema, values map[string]any) Result {
	result := Result{Errors: []string{}, Warnings: []string{}}

	for _, schema := range schemas {
		value, present := values[schema.Name]
		if !present || value == nil {
			if schema.Required {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Required parameter '%s' is missing", schema.Name))
			}
			// Defaulting for absent optionals happens in Process.
			continue
		}

		if msg := checkType(schema, value); msg != "" {
			result.Errors = append(result.Errors, msg)
			continue
		}

		if schema.Rule != nil {
			result.Errors = append(result.Errors, checkRule(schema, value)...)
		}
	}

	if extra := unexpectedKeys(schemas, values); len(extra) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unexpected parameters: %s", strings.Join(extra, ", ")))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// checkType returns an empty string when value conforms to the schema's
// declared type, otherwise a single diagnostic naming the parameter.
func checkType(schema Schema, value any) string {
	switch schema.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("Parameter '%s' must be a string", schema.Name)
		}
	case TypeNumber, TypeDecimal:
		if _, ok := numericValue(value); !ok {
			return fmt.Sprintf("Parameter '%s' must be a number", schema.Name)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("Parameter '%s' must be a boolean", schema.Name)
		}
	case TypeDate:
		if _, ok := dateValue(value); !ok {
			return fmt.Sprintf("Parameter '%s' must be a valid date", schema.Name)
		}
	case TypeArray:
		if !isSequence(value) {
			return fmt.Sprintf("Parameter '%s' must be an array", schema.Name)
		}
	}
	return ""
}

// checkRule applies min/max, pattern, and custom checks independently and
// returns every failure. Bounds mean string length for string parameters and
// numeric value for number/decimal parameters; on other types they are
// ignored. Pattern applies to strings only.
func checkRule(schema Schema, value any) []string {
	rule := schema.Rule
	var errs []string

	switch schema.Type {
	case TypeString:
		s := value.(string)
		if rule.Min != nil && float64(len(s)) < *rule.Min {
			errs = append(errs, fmt.Sprintf("Parameter '%s' must be at least %d characters",
				schema.Name, int(*rule.Min)))
		}
		if rule.Max != nil && float64(len(s)) > *rule.Max {
			errs = append(errs, fmt.Sprintf("Parameter '%s' must be at most %d characters",
				schema.Name, int(*rule.Max)))
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				errs = append(errs, fmt.Sprintf("Parameter '%s' has an invalid pattern rule: %v",
					schema.Name, err))
			} else if !re.MatchString(s) {
				errs = append(errs, fmt.Sprintf("Parameter '%s' does not match pattern %s",
					schema.Name, rule.Pattern))
			}
		}
	case TypeNumber, TypeDecimal:
		n, _ := numericValue(value)
		if rule.Min != nil && n < *rule.Min {
			errs = append(errs, fmt.Sprintf("Parameter '%s' must be at least %v",
				schema.Name, *rule.Min))
		}
		if rule.Max != nil && n > *rule.Max {
			errs = append(errs, fmt.Sprintf("Parameter '%s' must be at most %v",
				schema.Name, *rule.Max))
		}
	}

	if rule.Custom != nil {
		switch outcome := rule.Custom(value).(type) {
		case bool:
			if !outcome {
				errs = append(errs, fmt.Sprintf("Parameter '%s' failed custom validation",
					schema.Name))
			}
		case string:
			if outcome != "" {
				errs = append(errs, outcome)
			}
		}
	}

	return errs
}

// unexpectedKeys returns the sorted caller-supplied keys that no schema
// declares.
func unexpectedKeys(schemas []Schema, values map[string]any) []string {
	known := make(map[string]struct{}, len(schemas))
	for _, schema := range schemas {
		known[schema.Name] = struct{}{}
	}

	var extra []string
	for key := range values {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return extra
}

// numericValue extracts a float64 from any Go numeric or decimal.Decimal
// value. NaN and infinities are rejected. Strings are not numbers.
func numericValue(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case float32:
		n = float64(v)
	case float64:
		n = v
	case decimal.Decimal:
		n = v.InexactFloat64()
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// dateValue extracts a time.Time from a time value or a date string.
func dateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// isSequence reports whether value is a slice or array of any element type.
func isSequence(value any) bool {
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}
