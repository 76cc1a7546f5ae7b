package main

import (
	"fmt"
	"os"

	"github.com/harelstate/harel"
	"github.com/spf13/cobra"
)

var fmtFlags = struct {
	write *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "fmt <statechart file path>",
		Short:   "Rewrite a statechart definition into canonical form",
		Example: `  harel fmt player.hsc
  harel fmt -w player.hsc`,
		Args: cobra.ExactArgs(1),
		RunE: runFmt,
	}
	fmtFlags.write = cmd.Flags().BoolP("write", "w", false, "write the result back to the file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := readSource(path)
	if err != nil {
		return err
	}

	chart, err := harel.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if *fmtFlags.write {
		if path == "-" {
			return fmt.Errorf("cannot combine --write with stdin input")
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		defer f.Close()
		return harel.WriteCanonical(f, chart)
	}
	return harel.WriteCanonical(os.Stdout, chart)
}
