package schema

// Validate checks value against t and returns the normalized value.
// Failures are returned as a *Report holding every issue found.
// An optional shape given an absent value returns (Absent, nil).
func Validate(t Type, value any) (any, error) {
	out, issues := t.Parse(value, Path{})
	if len(issues) > 0 {
		return nil, &Report{Issues: issues}
	}
	return out, nil
}

// Valid reports whether value satisfies t.
func Valid(t Type, value any) bool {
	_, issues := t.Parse(value, Path{})
	return len(issues) == 0
}
