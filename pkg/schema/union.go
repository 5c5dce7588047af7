package schema

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OrType tries each branch in order and keeps the first success.
// When every branch fails, the first branch whose value had the right shape
// and only broke checks is reported. Failing that, the issues of the last
// branch are reported.
type OrType struct {
	branches []Type
}

// Or creates a union resolved by trial: a value is accepted by the first
// branch it satisfies.
func Or(branches ...Type) Type {
	return &OrType{branches: branches}
}

// Branches returns the alternatives in trial order.
func (t *OrType) Branches() []Type { return append([]Type(nil), t.branches...) }

func (t *OrType) Name() string {
	names := make([]string, len(t.branches))
	for i, b := range t.branches {
		names[i] = b.Name()
	}
	return strings.Join(names, " | ")
}

func (t *OrType) Parse(value any, path Path) (any, []Issue) {
	var issues, checked []Issue
	for _, b := range t.branches {
		out, branchIssues := b.Parse(value, path)
		if len(branchIssues) == 0 {
			return out, nil
		}
		if checked == nil && checksOnly(branchIssues) {
			checked = branchIssues
		}
		issues = branchIssues
	}
	if checked != nil {
		return nil, checked
	}
	return nil, issues
}

// checksOnly reports whether issues come from failed checks alone. A missing
// field, a wrong kind or a literal mismatch means the value does not have the
// branch's shape at all.
func checksOnly(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Code != CodeConstraintViolation || issue.Rule == "literal" {
			return false
		}
	}
	return true
}

func (t *OrType) OpenAPI() *openapi3.Schema {
	schemas := make([]*openapi3.Schema, len(t.branches))
	for i, b := range t.branches {
		schemas[i] = b.OpenAPI()
	}
	return openapi3.NewAnyOfSchema(schemas...)
}

// UnionType is a discriminated union: the value of one key selects the
// object shape the rest of the value is checked against.
type UnionType struct {
	key      string
	tags     []string
	variants map[string]*ObjectType
}

// DiscriminatedUnion creates a tagged union keyed on key. Every variant must
// declare key as a Literal; DiscriminatedUnion panics otherwise, or when two
// variants share a tag.
func DiscriminatedUnion(key string, variants ...*ObjectType) *UnionType {
	u := &UnionType{key: key, variants: make(map[string]*ObjectType, len(variants))}
	for _, v := range variants {
		t, ok := v.Lookup(key)
		if !ok {
			panic(fmt.Sprintf("schema: variant %s has no discriminator %q", v.Name(), key))
		}
		lit, ok := t.(*LiteralType)
		if !ok {
			panic(fmt.Sprintf("schema: discriminator %q must be a literal, got %s", key, t.Name()))
		}
		if _, dup := u.variants[lit.Value()]; dup {
			panic(fmt.Sprintf("schema: duplicate discriminator value %q", lit.Value()))
		}
		u.tags = append(u.tags, lit.Value())
		u.variants[lit.Value()] = v
	}
	return u
}

// Discriminator returns the tag key.
func (t *UnionType) Discriminator() string { return t.key }

// Tags returns the accepted tag values in declaration order.
func (t *UnionType) Tags() []string { return append([]string(nil), t.tags...) }

// Variant returns the shape selected by tag.
func (t *UnionType) Variant(tag string) (*ObjectType, bool) {
	v, ok := t.variants[tag]
	return v, ok
}

func (t *UnionType) Name() string {
	return fmt.Sprintf("union<%s: %s>", t.key, strings.Join(t.tags, " | "))
}

func (t *UnionType) Parse(value any, path Path) (any, []Issue) {
	data, ok := asMap(value)
	if !ok {
		return nil, []Issue{kindIssue("object", value, path)}
	}

	tag, _ := data[t.key].(string)
	variant, ok := t.variants[tag]
	if !ok {
		quoted := make([]string, len(t.tags))
		for i, v := range t.tags {
			quoted[i] = "'" + v + "'"
		}
		return nil, []Issue{{
			Path:    path.Append(t.key),
			Code:    CodeUnknownDiscriminant,
			Message: "Invalid discriminator value. Expected " + strings.Join(quoted, " | "),
		}}
	}
	return variant.Parse(data, path)
}

func (t *UnionType) OpenAPI() *openapi3.Schema {
	schemas := make([]*openapi3.Schema, len(t.tags))
	for i, tag := range t.tags {
		schemas[i] = t.variants[tag].OpenAPI()
	}
	s := openapi3.NewOneOfSchema(schemas...)
	s.Discriminator = &openapi3.Discriminator{PropertyName: t.key}
	return s
}
