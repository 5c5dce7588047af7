package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code classifies a validation issue.
type Code string

const (
	// CodeMissingField is reported when a required key is absent.
	CodeMissingField Code = "missing_field"
	// CodeTypeMismatch is reported when a value has the wrong primitive kind.
	CodeTypeMismatch Code = "type_mismatch"
	// CodeConstraintViolation is reported when a value of the right kind breaks a
	// length, range or format rule.
	CodeConstraintViolation Code = "constraint_violation"
	// CodeUnknownDiscriminant is reported when a tagged union receives a tag it
	// does not know.
	CodeUnknownDiscriminant Code = "unknown_discriminant"
)

// Path locates a value inside the validated input.
// Elements are either string keys or int indexes.
type Path []any

// Append returns a copy of p extended with elem.
func (p Path) Append(elem any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, elem)
}

// String renders the path in dotted form, e.g. "options.2".
// The empty path renders as "(root)".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	parts := make([]string, len(p))
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			parts[i] = v
		case int:
			parts[i] = strconv.Itoa(v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(parts, ".")
}

// Issue represents a single violated constraint.
type Issue struct {
	Path    Path   `json:"path"`
	Code    Code   `json:"code"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	if i.Rule == "" {
		return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Code)
	}
	return fmt.Sprintf("%s: %s (%s: %s)", i.Path, i.Message, i.Code, i.Rule)
}

// Report is the error returned when a value fails validation.
// It carries every issue found, in input order.
type Report struct {
	Issues []Issue `json:"errors"`
}

func (r *Report) Error() string {
	if len(r.Issues) == 1 {
		return r.Issues[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(r.Issues))
	for i, issue := range r.Issues {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, issue.Error())
	}
	return b.String()
}

// Fields groups issue messages by path string, the shape form UIs attach
// messages with.
func (r *Report) Fields() map[string][]string {
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		key := issue.Path.String()
		out[key] = append(out[key], issue.Message)
	}
	return out
}

// Has reports whether the report contains an issue with the given code at path.
func (r *Report) Has(code Code, path ...any) bool {
	want := Path(path).String()
	for _, issue := range r.Issues {
		if issue.Code == code && issue.Path.String() == want {
			return true
		}
	}
	return false
}

// Issues returns the issues carried by err if it is (or wraps) a *Report.
// Otherwise returns nil.
func Issues(err error) []Issue {
	var report *Report
	if errors.As(err, &report) {
		return report.Issues
	}
	return nil
}
