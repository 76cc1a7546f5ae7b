package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harelstate/harel"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check <statechart file path>",
		Short:   "Check a statechart definition for problems",
		Example: `  harel check player.hsc
  cat player.hsc | harel check -`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	checkFlags.json = cmd.Flags().Bool("json", false, "print diagnostics as JSON")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := readSource(path)
	if err != nil {
		return err
	}

	validated, diags := harel.ParseAndValidate(source)
	if *checkFlags.json {
		if err := printDiagnosticsJSON(diags); err != nil {
			return err
		}
	} else {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
				path, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message)
		}
	}
	if validated == nil {
		return fmt.Errorf("%s has %d problems", path, len(diags.Errors()))
	}
	return nil
}

// diagnosticJSON is the stable wire form of a diagnostic.
type diagnosticJSON struct {
	Stage    string `json:"stage"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func printDiagnosticsJSON(diags harel.Diagnostics) error {
	out := make([]diagnosticJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagnosticJSON{
			Stage:    d.Stage.String(),
			Kind:     d.Kind.String(),
			Severity: d.Severity.String(),
			Path:     d.Path,
			Message:  d.Message,
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
