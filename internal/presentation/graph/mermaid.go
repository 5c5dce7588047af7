package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/clubforms/pkg/schema"
)

// GenerateMermaid produces a Mermaid flowchart of a schema's structure.
// It applies semantic styling:
// - Root: ((Circle))
// - Variant (union branch): [/Parallelogram/]
// - Nested object: [[Subroutine]]
// - Field: [Rectangle]
// Optional fields hang off dotted edges; keyed variants are labelled with
// their discriminator value.
func GenerateMermaid(id string, t schema.Type) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := sanitizeMermaidID(id)
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", root, id))
	writeShape(&sb, root, t)
	return sb.String()
}

func writeShape(sb *strings.Builder, parent string, t schema.Type) {
	switch v := t.(type) {
	case *schema.OptionalType:
		writeShape(sb, parent, v.Inner())
	case *schema.ObjectType:
		writeFields(sb, parent, v)
	case *schema.UnionType:
		for _, tag := range v.Tags() {
			variant, _ := v.Variant(tag)
			node := parent + "_" + sanitizeMermaidID(tag)
			sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", node, tag))
			sb.WriteString(fmt.Sprintf("    %s -- \"%s = %s\" --> %s\n", parent, v.Discriminator(), tag, node))
			writeFields(sb, node, variant)
		}
	case *schema.OrType:
		for i, branch := range v.Branches() {
			node := fmt.Sprintf("%s_%d", parent, i+1)
			sb.WriteString(fmt.Sprintf("    %s[/\"option %d\"/]\n", node, i+1))
			sb.WriteString(fmt.Sprintf("    %s -- \"try %d\" --> %s\n", parent, i+1, node))
			writeShape(sb, node, branch)
		}
	default:
		node := parent + "_value"
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", node, escape(t.Name())))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", parent, node))
	}
}

func writeFields(sb *strings.Builder, parent string, obj *schema.ObjectType) {
	for _, f := range obj.Fields() {
		node := parent + "_" + sanitizeMermaidID(f.Key)
		arrow := "-->"
		if schema.IsOptional(f.Type) {
			arrow = "-.->"
		}

		switch f.Type.(type) {
		case *schema.ObjectType, *schema.UnionType:
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", node, f.Key))
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, node))
			writeShape(sb, node, f.Type)
		default:
			sb.WriteString(fmt.Sprintf("    %s[\"%s: %s\"]\n", node, f.Key, escape(f.Type.Name())))
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, node))
		}
	}
}

// escape replaces double quotes, which terminate Mermaid labels.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
