package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/render"
)

// renderFlags holds flags for the render command.
type renderFlags struct {
	parse     parseFlags
	detailed  bool
	direction string
	output    string
}

// renderCommand creates the render command, which draws a diagram via
// Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an architecture file as an SVG diagram",
		Long: `Render an architecture description as an SVG diagram using Graphviz
layout. The input may be DSL text or graph JSON.

Nested modules and groups are drawn as clusters around their children.

Examples:
  archtext render system.arch -o system.svg
  archtext render graph.json --direction LR -o system.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], flags)
		},
	}

	c.registerParseFlags(cmd, &flags.parse)
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include node properties in labels")
	cmd.Flags().StringVar(&flags.direction, "direction", "TB", "layout direction (TB, LR, BT, RL)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, flags *renderFlags) error {
	g, err := c.loadGraph(ctx, path, &flags.parse)
	if err != nil {
		return err
	}

	dot := render.ToDOT(g, render.Options{
		Detailed:  flags.detailed,
		Direction: flags.direction,
	})

	spin := newSpinnerWithContext(ctx, "Rendering diagram...")
	spin.Start()
	svg, err := render.RenderSVG(ctx, dot)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("render SVG: %w", err)
	}

	out, err := openOutput(flags.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(svg); err != nil {
		return err
	}
	if flags.output != "" {
		printSuccess("Rendered %s", path)
		printStats(g.NodeCount(), g.EdgeCount(), false)
		printFile(flags.output)
	}
	return nil
}
