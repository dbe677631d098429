package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/graph"
)

// lintCommand creates the lint command, which checks both syntax and
// referential integrity (edges pointing at declared nodes).
func (c *CLI) lintCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Check an architecture file for problems",
		Long: `Check an architecture description file for syntax errors and for edges
that reference undeclared nodes.

Parse errors are reported with their source line and column. Unresolved
edge references are warnings: the file still parses, but a diagram built
from it would have dangling arrows.

Examples:
  archtext lint system.arch
  archtext lint - < system.arch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLint(cmd.Context(), args[0], flags)
		},
	}

	c.registerParseFlags(cmd, flags)

	return cmd
}

func (c *CLI) runLint(ctx context.Context, path string, flags *parseFlags) error {
	source, err := readInput(path)
	if err != nil {
		return err
	}

	g, _, err := c.parseSource(ctx, path, source, flags)
	if err != nil {
		return err
	}

	refs := graph.Validate(g)
	if len(refs) == 0 {
		printSuccess("%s: no problems found", path)
		printStats(g.NodeCount(), g.EdgeCount(), false)
		return nil
	}

	for _, ref := range refs {
		printWarning("edge %s: %s %q does not match any node", ref.EdgeID, ref.Endpoint, ref.Ref)
	}
	fmt.Fprintln(os.Stderr)
	return errors.New(errors.ErrCodeInvalidGraph,
		"%d unresolved reference(s) in %s", len(refs), path)
}
