// Package params provides parameter schemas, validation, and normalization
// for query templates.
package params

// Type identifies the declared type of a template parameter.
type Type string

const (
	// TypeString accepts string values.
	TypeString Type = "string"
	// TypeNumber accepts finite numeric values.
	TypeNumber Type = "number"
	// TypeDecimal accepts finite numeric values carried as exact decimals.
	TypeDecimal Type = "decimal"
	// TypeBoolean accepts boolean values.
	TypeBoolean Type = "boolean"
	// TypeDate accepts time values or date strings.
	TypeDate Type = "date"
	// TypeArray accepts slice values.
	TypeArray Type = "array"
)

// Known reports whether t is one of the declared parameter types.
func (t Type) Known() bool {
	switch t {
	case TypeString, TypeNumber, TypeDecimal, TypeBoolean, TypeDate, TypeArray:
		return true
	}
	return false
}

// CustomFunc is a caller-supplied predicate applied to a raw value after the
// type check passes. Returning true means pass, false means a generic
// failure, and a string is used verbatim as the error message.
type CustomFunc func(value any) any

// Rule bundles the optional validation constraints for one parameter.
// Min and Max are numeric bounds for number/decimal parameters and length
// bounds for string parameters; nil means unconstrained. Pattern is a regular
// expression applied to string parameters only.
type Rule struct {
	Min     *float64
	Max     *float64
	Pattern string
	Custom  CustomFunc
}

// Schema describes one named template parameter.
type Schema struct {
	Name     string
	Type     Type
	Required bool
	// Default is applied verbatim during processing when the caller omits
	// the parameter. Defaults are assumed pre-typed by the template author.
	Default any
	Rule    *Rule
	// Examples are documentation only and never affect behavior.
	Examples []string
}

// Bound returns a Rule constraint pointer for literal bounds.
func Bound(v float64) *float64 {
	return &v
}
