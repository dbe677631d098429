package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/dsl"
	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/observability"
)

// fmtFlags holds flags for the fmt command.
type fmtFlags struct {
	parse  parseFlags
	indent string // indentation unit
	sort   bool   // order top-level nodes by type
	write  bool   // rewrite the input file in place
	check  bool   // exit non-zero when input is not formatted
	output string
}

// fmtCommand creates the fmt command, which parses a file and prints it
// back in canonical form.
func (c *CLI) fmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Format an architecture file canonically",
		Long: `Format an architecture description file: sorted properties, normalized
indentation, and a stable node/edge layout. Formatting is idempotent.

Examples:
  archtext fmt system.arch            # Formatted text to stdout
  archtext fmt -w system.arch         # Rewrite the file in place
  archtext fmt --check system.arch    # Exit 1 if not formatted
  archtext fmt --sort system.arch     # Order top-level nodes by type`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(cmd.Context(), args[0], flags)
		},
	}

	c.registerParseFlags(cmd, &flags.parse)
	cmd.Flags().StringVar(&flags.indent, "indent", c.Config.Indent, "indentation unit (default two spaces)")
	cmd.Flags().BoolVar(&flags.sort, "sort", c.Config.SortByType, "order top-level nodes by type")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite the input file in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when the file is not formatted")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runFmt(ctx context.Context, path string, flags *fmtFlags) error {
	if flags.indent != "" {
		if err := errors.ValidateIndent(flags.indent); err != nil {
			return err
		}
	}

	source, err := readInput(path)
	if err != nil {
		return err
	}

	g, _, err := c.parseSource(ctx, path, source, &flags.parse)
	if err != nil {
		return err
	}

	observability.Parser().OnPrintStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	formatted := dsl.Print(g, dsl.PrintOptions{
		Indent:     flags.indent,
		SortByType: flags.sort,
	})
	observability.Parser().OnPrintComplete(ctx, len(formatted), time.Since(start))

	switch {
	case flags.check:
		if source != formatted {
			printError("%s is not formatted", path)
			return errors.New(errors.ErrCodeInvalidInput, "file is not formatted")
		}
		printSuccess("%s is formatted", path)
		return nil

	case flags.write:
		if path == "-" {
			return errors.New(errors.ErrCodeInvalidInput, "cannot use --write with stdin")
		}
		if source == formatted {
			c.Logger.Debug("Already formatted", "file", path)
			return nil
		}
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return err
		}
		printSuccess("Formatted %s", path)
		return nil

	default:
		out, err := openOutput(flags.output)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = fmt.Fprint(out, formatted)
		return err
	}
}
