package schema

import (
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Field binds a key of an object shape to its type.
type Field struct {
	Key  string
	Type Type
}

// Key creates a Field.
func Key(key string, t Type) Field { return Field{Key: key, Type: t} }

// ObjectType validates string-keyed maps field by field.
// Keys not declared in the shape are dropped from the output.
type ObjectType struct {
	fields []Field
}

// Object creates an object shape. Fields are validated, and their issues
// reported, in declaration order.
func Object(fields ...Field) *ObjectType {
	return &ObjectType{fields: append([]Field(nil), fields...)}
}

// Extend returns a new shape with fields added. A field whose key already
// exists replaces the original in place.
func (t *ObjectType) Extend(fields ...Field) *ObjectType {
	out := append([]Field(nil), t.fields...)
	for _, f := range fields {
		replaced := false
		for i := range out {
			if out[i].Key == f.Key {
				out[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return &ObjectType{fields: out}
}

// Fields returns the declared fields in order.
func (t *ObjectType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// Lookup returns the type declared for key.
func (t *ObjectType) Lookup(key string) (Type, bool) {
	for _, f := range t.fields {
		if f.Key == key {
			return f.Type, true
		}
	}
	return nil, false
}

func (t *ObjectType) Name() string {
	keys := make([]string, len(t.fields))
	for i, f := range t.fields {
		keys[i] = f.Key + ": " + f.Type.Name()
	}
	return "{" + strings.Join(keys, ", ") + "}"
}

func (t *ObjectType) Parse(value any, path Path) (any, []Issue) {
	data, ok := asMap(value)
	if !ok {
		return nil, []Issue{kindIssue("object", value, path)}
	}

	out := make(map[string]any, len(t.fields))
	var issues []Issue
	for _, f := range t.fields {
		raw, exists := data[f.Key]
		if !exists {
			raw = Absent
		}
		parsed, fieldIssues := f.Type.Parse(raw, path.Append(f.Key))
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			continue
		}
		if !IsAbsent(parsed) {
			out[f.Key] = parsed
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (t *ObjectType) OpenAPI() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, f := range t.fields {
		s.WithProperty(f.Key, f.Type.OpenAPI())
		if !IsOptional(f.Type) {
			s.Required = append(s.Required, f.Key)
		}
	}
	return s
}

// asMap accepts map[string]any directly and any other map with string keys
// through reflection.
func asMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	if value == nil || IsAbsent(value) {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
