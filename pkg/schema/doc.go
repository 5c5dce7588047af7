// Package schema provides composable shapes for validating loosely typed input.
//
// A shape is a Type. Parsing a raw value against it yields either the
// normalized value or a list of path-tagged issues. Issues are data: every
// field of an object is checked and every failure is reported, in declaration
// order.
//
// Basic usage:
//
//	link := schema.Object(
//	    schema.Key("linkName", schema.String(schema.MinLength(3))),
//	    schema.Key("url", schema.String(schema.URL())),
//	)
//
//	value, err := schema.Validate(link, map[string]any{
//	    "linkName": "ab",
//	    "url":      "not-a-url",
//	})
//	for _, issue := range schema.Issues(err) {
//	    fmt.Println(issue.Path, issue.Message)
//	}
//
// Tagged records are built with DiscriminatedUnion, which reads one key and
// checks the value against the matching variant only. Or resolves by trial
// instead: the first branch that accepts the value wins. When none does, the
// first branch that failed only on checks is reported, or else the last
// branch.
//
// Every shape can describe itself as an OpenAPI schema through OpenAPI.
package schema
