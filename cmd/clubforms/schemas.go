package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/clubforms"
	"github.com/aretw0/clubforms/internal/presentation/graph"
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas [id]",
	Short: "List schemas or describe one",
	Long: `Without arguments, lists every schema ID with its description.
--openapi prints the OpenAPI document (or a single schema when an ID is given);
--graph prints a Mermaid diagram of the schema's structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		reg := clubforms.New(clubforms.WithFeedbackDispatch(cfg.Dispatch()))
		out := cmd.OutOrStdout()

		openapi, _ := cmd.Flags().GetBool("openapi")
		asGraph, _ := cmd.Flags().GetBool("graph")
		format, _ := cmd.Flags().GetString("format")

		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		switch {
		case asGraph:
			if id == "" {
				return fmt.Errorf("--graph needs a schema ID")
			}
			return printGraph(out, reg, id)
		case openapi:
			return printOpenAPI(out, reg, id, format)
		default:
			return printSchemaList(out, reg, id)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.Flags().Bool("openapi", false, "Print the OpenAPI description")
	schemasCmd.Flags().Bool("graph", false, "Print a Mermaid diagram of the schema")
	schemasCmd.Flags().StringP("format", "f", "json", "OpenAPI encoding: json or yaml")
}

func printSchemaList(w io.Writer, reg *registry.Registry, only string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, id := range reg.IDs() {
		if only != "" && id != only {
			continue
		}
		e, _ := reg.Lookup(id)
		fmt.Fprintf(tw, "%s\t%s\n", id, e.Description)
	}
	if only != "" {
		if _, ok := reg.Lookup(only); !ok {
			return fmt.Errorf("%w %q", registry.ErrUnknownSchema, only)
		}
	}
	return tw.Flush()
}

func printGraph(w io.Writer, reg *registry.Registry, id string) error {
	e, ok := reg.Lookup(id)
	if !ok {
		return fmt.Errorf("%w %q", registry.ErrUnknownSchema, id)
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(id, e.Schema))
	return err
}

func printOpenAPI(w io.Writer, reg *registry.Registry, id, format string) error {
	var doc any
	if id == "" {
		doc = reg.Document("clubforms", strings.TrimSpace(clubforms.Version))
	} else {
		s, err := reg.Describe(id)
		if err != nil {
			return err
		}
		doc = s
	}

	// Round-trip through JSON so YAML output honours the OpenAPI field names.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}
