package layout

// JSONSchema describes the node grammar as a JSON Schema document,
// suitable for constraining a structured-output generator. The result
// is a fresh map on every call.
func JSONSchema() map[string]any {
	queryNode := func(kind Kind, about string) map[string]any {
		return map[string]any{
			"type":        "object",
			"description": about,
			"properties": map[string]any{
				"id":      map[string]any{"const": string(kind)},
				"queryId": map[string]any{"type": "string"},
				"query":   map[string]any{"type": "string"},
			},
			"required":             []any{"id", "queryId", "query"},
			"additionalProperties": false,
		}
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   "LayoutNode",
		"type":    "object",
		"$ref":    "#/$defs/node",
		"$defs": map[string]any{
			"node": map[string]any{
				"oneOf": []any{
					ref("container"), ref("text"), ref("input"), ref("button"), ref("form"),
				},
			},
			"container": map[string]any{
				"type":        "object",
				"description": "A logical grouping element that wraps other nodes.",
				"properties": map[string]any{
					"id":       map[string]any{"const": string(KindContainer)},
					"children": map[string]any{"type": "array", "items": ref("node")},
				},
				"required":             []any{"id", "children"},
				"additionalProperties": false,
			},
			"text": map[string]any{
				"type":        "object",
				"description": "Displays a single piece of plain text.",
				"properties": map[string]any{
					"id":      map[string]any{"const": string(KindText)},
					"content": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "content"},
				"additionalProperties": false,
			},
			"input":  queryNode(KindInput, "A free-text question awaiting user input."),
			"button": queryNode(KindButton, "A clickable option for the user to choose."),
			"form": map[string]any{
				"type":        "object",
				"description": "Packages multiple inputs/buttons so they submit together.",
				"properties": map[string]any{
					"id": map[string]any{"const": string(KindForm)},
					"children": map[string]any{
						"type":  "array",
						"items": map[string]any{"oneOf": []any{ref("input"), ref("button")}},
					},
				},
				"required":             []any{"id", "children"},
				"additionalProperties": false,
			},
		},
	}
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/$defs/" + name}
}
