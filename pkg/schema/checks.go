package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
)

// formats backs the URL and Email checks. validator.Validate is safe for
// concurrent use.
var formats = validator.New()

// Check is a constraint evaluated on a value that already has the right kind.
// A failed check produces a CodeConstraintViolation issue.
type Check struct {
	// Rule names the constraint, e.g. "min_length".
	Rule string
	// Message is reported when the check fails.
	Message string

	test     func(any) bool
	annotate func(*openapi3.Schema)
}

// WithMessage returns a copy of c reporting msg on failure.
func (c Check) WithMessage(msg string) Check {
	c.Message = msg
	return c
}

// Refine creates a custom check. fn receives the normalized value: a string,
// a float64 for numbers and integers, or a []any for slices.
func Refine(rule, message string, fn func(any) bool) Check {
	return Check{Rule: rule, Message: message, test: fn}
}

func runChecks(checks []Check, value any, path Path) []Issue {
	var issues []Issue
	for _, c := range checks {
		if c.test(value) {
			continue
		}
		issues = append(issues, Issue{
			Path:    path,
			Code:    CodeConstraintViolation,
			Rule:    c.Rule,
			Message: c.Message,
		})
	}
	return issues
}

func describe(s *openapi3.Schema, checks []Check) *openapi3.Schema {
	for _, c := range checks {
		if c.annotate != nil {
			c.annotate(s)
		}
	}
	return s
}

// MinLength requires a string of at least n characters.
func MinLength(n int) Check {
	return Check{
		Rule:    "min_length",
		Message: fmt.Sprintf("String must contain at least %d character(s)", n),
		test: func(v any) bool {
			s, _ := v.(string)
			return utf8.RuneCountInString(s) >= n
		},
		annotate: func(s *openapi3.Schema) { s.WithMinLength(int64(n)) },
	}
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int) Check {
	return Check{
		Rule:    "max_length",
		Message: fmt.Sprintf("String must contain at most %d character(s)", n),
		test: func(v any) bool {
			s, _ := v.(string)
			return utf8.RuneCountInString(s) <= n
		},
		annotate: func(s *openapi3.Schema) { s.WithMaxLength(int64(n)) },
	}
}

// Positive requires a number greater than zero.
func Positive() Check {
	return Check{
		Rule:    "positive",
		Message: "Number must be greater than 0",
		test: func(v any) bool {
			f, _ := v.(float64)
			return f > 0
		},
		annotate: func(s *openapi3.Schema) { s.WithMin(0).WithExclusiveMin(true) },
	}
}

// MinItems requires a slice with at least n elements.
func MinItems(n int) Check {
	return Check{
		Rule:    "min_items",
		Message: fmt.Sprintf("Array must contain at least %d element(s)", n),
		test: func(v any) bool {
			items, _ := v.([]any)
			return len(items) >= n
		},
		annotate: func(s *openapi3.Schema) { s.WithMinItems(int64(n)) },
	}
}

// ItemsBetween requires a slice with lo to hi elements, inclusive.
func ItemsBetween(lo, hi int) Check {
	return Check{
		Rule:    "items_between",
		Message: fmt.Sprintf("Array must contain between %d and %d element(s)", lo, hi),
		test: func(v any) bool {
			items, _ := v.([]any)
			return len(items) >= lo && len(items) <= hi
		},
		annotate: func(s *openapi3.Schema) { s.WithMinItems(int64(lo)).WithMaxItems(int64(hi)) },
	}
}

// URL requires a syntactically valid absolute URL.
func URL() Check {
	return Check{
		Rule:    "url",
		Message: "Invalid url",
		test: func(v any) bool {
			s, _ := v.(string)
			return s != "" && formats.Var(s, "url") == nil
		},
		annotate: func(s *openapi3.Schema) { s.WithFormat("uri") },
	}
}

// Email requires a syntactically valid email address.
func Email() Check {
	return Check{
		Rule:    "email",
		Message: "Invalid email",
		test: func(v any) bool {
			s, _ := v.(string)
			return s != "" && formats.Var(s, "email") == nil
		},
		annotate: func(s *openapi3.Schema) { s.WithFormat("email") },
	}
}
