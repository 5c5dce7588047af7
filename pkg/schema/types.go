package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

// Type defines the contract for a shape.
// Implementations check a raw value and return its canonical form.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "object").
	Name() string
	// Parse validates value located at path. It returns the normalized value
	// when no issues are found.
	Parse(value any, path Path) (any, []Issue)
	// OpenAPI describes the shape as an OpenAPI schema.
	OpenAPI() *openapi3.Schema
}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent stands for a key that is not present in the input. Object shapes
// pass it to field types for missing keys and drop fields that normalize to it.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct {
	checks []Check
}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Parse(value any, path Path) (any, []Issue) {
	s, ok := value.(string)
	if !ok {
		return nil, []Issue{kindIssue("string", value, path)}
	}
	if issues := runChecks(t.checks, s, path); len(issues) > 0 {
		return nil, issues
	}
	return s, nil
}

func (t *StringType) OpenAPI() *openapi3.Schema {
	return describe(openapi3.NewStringSchema(), t.checks)
}

// NumberType validates finite numeric values and normalizes them to float64.
type NumberType struct {
	checks []Check
}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Parse(value any, path Path) (any, []Issue) {
	f, ok := toFloat(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, []Issue{kindIssue("number", value, path)}
	}
	if issues := runChecks(t.checks, f, path); len(issues) > 0 {
		return nil, issues
	}
	return f, nil
}

func (t *NumberType) OpenAPI() *openapi3.Schema {
	return describe(openapi3.NewFloat64Schema(), t.checks)
}

// IntType validates whole numbers and normalizes them to int.
// Floats are accepted when they carry no fractional part (JSON decoding).
type IntType struct {
	checks []Check
}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Parse(value any, path Path) (any, []Issue) {
	f, ok := toFloat(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, []Issue{kindIssue("integer", value, path)}
	}
	if f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
		return nil, []Issue{{
			Path:    path,
			Code:    CodeTypeMismatch,
			Message: "Expected integer, received float",
		}}
	}
	i := int(f)
	if issues := runChecks(t.checks, float64(i), path); len(issues) > 0 {
		return nil, issues
	}
	return i, nil
}

func (t *IntType) OpenAPI() *openapi3.Schema {
	return describe(openapi3.NewIntegerSchema(), t.checks)
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Parse(value any, path Path) (any, []Issue) {
	b, ok := value.(bool)
	if !ok {
		return nil, []Issue{kindIssue("boolean", value, path)}
	}
	return b, nil
}

func (t *BoolType) OpenAPI() *openapi3.Schema { return openapi3.NewBoolSchema() }

// NaNType accepts only the floating point NaN value.
type NaNType struct{}

func (t *NaNType) Name() string { return "nan" }

func (t *NaNType) Parse(value any, path Path) (any, []Issue) {
	f, ok := toFloat(value)
	if !ok || !math.IsNaN(f) {
		return nil, []Issue{kindIssue("nan", value, path)}
	}
	return f, nil
}

func (t *NaNType) OpenAPI() *openapi3.Schema {
	s := openapi3.NewFloat64Schema()
	s.Description = "NaN"
	return s
}

// LiteralType accepts exactly one string value.
type LiteralType struct {
	value string
}

func (t *LiteralType) Name() string { return fmt.Sprintf("%q", t.value) }

// Value returns the accepted literal.
func (t *LiteralType) Value() string { return t.value }

func (t *LiteralType) Parse(value any, path Path) (any, []Issue) {
	if IsAbsent(value) {
		return nil, []Issue{kindIssue("string", value, path)}
	}
	if s, ok := value.(string); ok && s == t.value {
		return s, nil
	}
	return nil, []Issue{{
		Path:    path,
		Code:    CodeConstraintViolation,
		Rule:    "literal",
		Message: fmt.Sprintf("Invalid literal value, expected %q", t.value),
	}}
}

func (t *LiteralType) OpenAPI() *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum(t.value)
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
	checks   []Check
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Parse(value any, path Path) (any, []Issue) {
	if IsAbsent(value) || value == nil {
		return nil, []Issue{kindIssue("array", value, path)}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, []Issue{kindIssue("array", value, path)}
	}

	out := make([]any, rv.Len())
	var issues []Issue
	for i := 0; i < rv.Len(); i++ {
		elem, elemIssues := t.elemType.Parse(rv.Index(i).Interface(), path.Append(i))
		issues = append(issues, elemIssues...)
		out[i] = elem
	}
	if len(issues) > 0 {
		return nil, issues
	}
	if issues := runChecks(t.checks, out, path); len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (t *SliceType) OpenAPI() *openapi3.Schema {
	return describe(openapi3.NewArraySchema().WithItems(t.elemType.OpenAPI()), t.checks)
}

// OptionalType lets a value be absent.
type OptionalType struct {
	inner Type
}

// Inner returns the wrapped type.
func (t *OptionalType) Inner() Type { return t.inner }

func (t *OptionalType) Name() string { return t.inner.Name() + "?" }

func (t *OptionalType) Parse(value any, path Path) (any, []Issue) {
	if IsAbsent(value) {
		return Absent, nil
	}
	return t.inner.Parse(value, path)
}

func (t *OptionalType) OpenAPI() *openapi3.Schema { return t.inner.OpenAPI() }

// TransformType rewrites the value produced by an inner type.
type TransformType struct {
	inner Type
	fn    func(any) any
}

func (t *TransformType) Name() string { return t.inner.Name() }

func (t *TransformType) Parse(value any, path Path) (any, []Issue) {
	out, issues := t.inner.Parse(value, path)
	if len(issues) > 0 {
		return nil, issues
	}
	return t.fn(out), nil
}

func (t *TransformType) OpenAPI() *openapi3.Schema { return t.inner.OpenAPI() }

// --- Factory Functions ---

// String creates a string type validator.
func String(checks ...Check) Type { return &StringType{checks: checks} }

// Number creates a number type validator.
func Number(checks ...Check) Type { return &NumberType{checks: checks} }

// Int creates an integer type validator.
func Int(checks ...Check) Type { return &IntType{checks: checks} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// NaN creates a validator that only accepts NaN.
func NaN() Type { return &NaNType{} }

// Literal creates a validator accepting exactly value.
func Literal(value string) Type { return &LiteralType{value: value} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type, checks ...Check) Type {
	return &SliceType{elemType: elemType, checks: checks}
}

// Optional allows the value to be absent.
func Optional(t Type) Type { return &OptionalType{inner: t} }

// Transform applies fn to the value produced by t. Returning Absent from fn
// removes the field from the enclosing object.
func Transform(t Type, fn func(any) any) Type {
	return &TransformType{inner: t, fn: fn}
}

// IsOptional reports whether t accepts an absent value.
func IsOptional(t Type) bool {
	_, ok := t.(*OptionalType)
	return ok
}

// --- helpers ---

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// received names the kind of value the way error messages report it.
func received(value any) string {
	if IsAbsent(value) {
		return "undefined"
	}
	if value == nil {
		return "null"
	}
	if f, ok := toFloat(value); ok {
		if math.IsNaN(f) {
			return "nan"
		}
		return "number"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func kindIssue(expected string, value any, path Path) Issue {
	if IsAbsent(value) {
		return Issue{Path: path, Code: CodeMissingField, Message: "Required"}
	}
	return Issue{
		Path:    path,
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("Expected %s, received %s", expected, received(value)),
	}
}
