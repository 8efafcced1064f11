package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"ontoscout/internal/ontology"
)

// describeCmd renders a markdown summary of a canonical type
var describeCmd = &cobra.Command{
	Use:   "describe NAMESPACE/TYPE",
	Short: "Show a formatted summary of a canonical entity type",
	Long: `Renders a markdown summary of a type: description, ancestry, and its
required and optional fields with inheritance resolved.

Example:
  ontoscout describe FACILITIES/ROOM`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	namespace, typeName := parseTypeRef(args[0])
	et, err := a.universe.ResolveType(namespace, typeName)
	if err != nil {
		return err
	}
	fields, err := a.explorer.FieldsOf(namespace, typeName, false)
	if err != nil {
		return err
	}

	md := describeMarkdown(et, fields)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Fall back to raw markdown when the terminal profile is unusable.
		fmt.Println(md)
		return nil
	}
	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

func describeMarkdown(et *ontology.EntityType, fields []ontology.FieldDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", et.Key())
	if et.Description() != "" {
		fmt.Fprintf(&b, "%s\n\n", et.Description())
	}
	if et.IsAbstract() {
		b.WriteString("*Abstract type — never a matchable target.*\n\n")
	}
	if parents := et.ParentNames(); len(parents) > 0 {
		fmt.Fprintf(&b, "Implements: %s\n\n", strings.Join(parents, ", "))
	}

	var required, optional []ontology.FieldDefinition
	for _, f := range fields {
		if f.Optional {
			optional = append(optional, f)
		} else {
			required = append(required, f)
		}
	}

	fmt.Fprintf(&b, "## Required fields (%d)\n\n", len(required))
	for _, f := range required {
		fmt.Fprintf(&b, "- `%s`\n", f.Key())
	}
	fmt.Fprintf(&b, "\n## Optional fields (%d)\n\n", len(optional))
	for _, f := range optional {
		fmt.Fprintf(&b, "- `%s`\n", f.Key())
	}
	return b.String()
}
