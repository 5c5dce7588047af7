package registry

// OpenAPIVersion is the version of the documents built by Document.
const OpenAPIVersion = "3.0.3"

// Document builds an OpenAPI document exposing every registered schema as
// a component and a POST /validate/{id} operation per schema. The result
// is ready for encoding/json.
func (r *Registry) Document(title, version string) map[string]any {
	components := r.Components()
	paths := make(map[string]any, len(components))
	for _, id := range r.IDs() {
		entry, _ := r.Lookup(id)
		ref := map[string]any{"$ref": "#/components/schemas/" + id}
		paths["/validate/"+id] = map[string]any{
			"post": map[string]any{
				"operationId": "validate-" + id,
				"summary":     entry.Description,
				"requestBody": map[string]any{
					"required": false,
					"content": map[string]any{
						"application/json": map[string]any{"schema": ref},
					},
				},
				"responses": map[string]any{
					"200": jsonResponse("Normalized record", map[string]any{
						"type": "object",
						"properties": map[string]any{
							"schema": map[string]any{"type": "string"},
							"value":  ref,
						},
					}),
					"422": jsonResponse("Validation report", map[string]any{"$ref": "#/components/schemas/ValidationReport"}),
					"400": map[string]any{"description": "Malformed JSON body"},
					"413": map[string]any{"description": "Body too large"},
				},
			},
		}
	}

	schemas := make(map[string]any, len(components)+2)
	for id, s := range components {
		schemas[id] = s
	}
	schemas["ValidationIssue"] = map[string]any{
		"type":     "object",
		"required": []string{"path", "code", "message"},
		"properties": map[string]any{
			"path": map[string]any{
				"type":  "array",
				"items": map[string]any{"oneOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "integer"}}},
			},
			"code": map[string]any{
				"type": "string",
				"enum": []string{"missing_field", "type_mismatch", "constraint_violation", "unknown_discriminant"},
			},
			"rule":    map[string]any{"type": "string"},
			"message": map[string]any{"type": "string"},
		},
	}
	schemas["ValidationReport"] = map[string]any{
		"type":     "object",
		"required": []string{"errors"},
		"properties": map[string]any{
			"errors": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/components/schemas/ValidationIssue"},
			},
		},
	}

	return map[string]any{
		"openapi": OpenAPIVersion,
		"info": map[string]any{
			"title":   title,
			"version": version,
		},
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}
