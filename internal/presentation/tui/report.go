package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/muesli/termenv"
)

// Output selects how validation results are printed.
type Output string

const (
	OutputText     Output = "text"
	OutputJSON     Output = "json"
	OutputMarkdown Output = "markdown"
)

// ParseOutput validates an --output flag value.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(s)); o {
	case OutputText, OutputJSON, OutputMarkdown:
		return o, nil
	case "md":
		return OutputMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output %q (want text, json or markdown)", s)
	}
}

// Result is one validation outcome to print. Report is nil on success.
type Result struct {
	Schema string
	Value  any
	Report *schema.Report
}

// Printer writes results in a fixed format. Markdown is rendered with
// glamour when Terminal is set.
type Printer struct {
	W        io.Writer
	Format   Output
	Terminal bool
}

// Print writes r.
func (p Printer) Print(r Result) error {
	switch p.Format {
	case OutputJSON:
		return p.printJSON(r)
	case OutputMarkdown:
		md := Markdown(r)
		if p.Terminal {
			rendered, err := NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(p.W, md)
		return err
	default:
		return p.printText(r)
	}
}

func (p Printer) printText(r Result) error {
	if r.Report == nil {
		fmt.Fprintln(p.W, Status(true, "valid "+r.Schema))
		return writeIndented(p.W, r.Value)
	}
	fmt.Fprintln(p.W, Status(false, fmt.Sprintf("%s: %s", r.Schema, plural(len(r.Report.Issues), "issue"))))
	for _, issue := range r.Report.Issues {
		fmt.Fprintf(p.W, "  %s\n", issue.Error())
	}
	return nil
}

func (p Printer) printJSON(r Result) error {
	out := map[string]any{
		"schema": r.Schema,
		"valid":  r.Report == nil,
	}
	if r.Report == nil {
		out["value"] = r.Value
	} else {
		out["errors"] = r.Report.Issues
	}
	return writeIndented(p.W, out)
}

// Markdown formats r as a markdown document.
func Markdown(r Result) string {
	var sb strings.Builder
	if r.Report == nil {
		sb.WriteString(fmt.Sprintf("## ✔ %s\n\n```json\n", r.Schema))
		b, _ := json.MarshalIndent(r.Value, "", "  ")
		sb.Write(b)
		sb.WriteString("\n```\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("## ✘ %s\n\n", r.Schema))
	sb.WriteString("| # | Path | Code | Message |\n")
	sb.WriteString("|---|------|------|---------|\n")
	for i, issue := range r.Report.Issues {
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s |\n",
			i+1, issue.Path, issue.Code, strings.ReplaceAll(issue.Message, "|", "\\|")))
	}
	return sb.String()
}

// Status colours a one-line status message for the current terminal.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return p.String("✔ " + msg).Foreground(p.Color("#22c55e")).String()
	}
	return p.String("✘ " + msg).Foreground(p.Color("#ef4444")).Bold().String()
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
