package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/dsl"
	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/graph"
	"github.com/archtext/archtext/pkg/render"
)

// Export formats.
const (
	formatJSON = "json"
	formatDSL  = "dsl"
	formatDOT  = "dot"
)

// exportFlags holds flags for the export command.
type exportFlags struct {
	parse    parseFlags
	format   string
	detailed bool
	output   string
}

// exportCommand creates the export command, which converts between the
// textual formats: DSL text, graph JSON, and Graphviz DOT.
func (c *CLI) exportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert between DSL text, graph JSON, and Graphviz DOT",
		Long: `Convert an architecture description between formats. The input may be
DSL text or graph JSON (detected from the file extension and content).

Formats:
  json   Graph JSON (the parse output)
  dsl    Canonical DSL text (the print output)
  dot    Graphviz DOT, for use with the dot toolchain

Examples:
  archtext export system.arch --format dot -o system.dot
  archtext export graph.json --format dsl
  archtext export system.arch --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], flags)
		},
	}

	c.registerParseFlags(cmd, &flags.parse)
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatDOT, "output format (json, dsl, dot)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include node properties in DOT labels")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// loadGraph reads path as either graph JSON or DSL text and returns the graph.
func (c *CLI) loadGraph(ctx context.Context, path string, flags *parseFlags) (*graph.Graph, error) {
	source, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if inputIsJSON(path, source) {
		return graph.Unmarshal([]byte(source))
	}
	g, _, err := c.parseSource(ctx, path, source, flags)
	return g, err
}

func (c *CLI) runExport(ctx context.Context, path string, flags *exportFlags) error {
	g, err := c.loadGraph(ctx, path, &flags.parse)
	if err != nil {
		return err
	}

	out, err := openOutput(flags.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch flags.format {
	case formatJSON:
		return graph.Write(g, out)
	case formatDSL:
		_, err = fmt.Fprint(out, dsl.Print(g, dsl.PrintOptions{}))
		return err
	case formatDOT:
		_, err = fmt.Fprint(out, render.ToDOT(g, render.Options{Detailed: flags.detailed}))
		return err
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (available: json, dsl, dot)", flags.format)
	}
}
