package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/cache"
	"github.com/archtext/archtext/pkg/dsl"
	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/graph"
	"github.com/archtext/archtext/pkg/observability"
)

// parseFlags holds flags shared by parse and the commands built on it.
type parseFlags struct {
	backend    string // parser backend: auto, line, grammar
	graphID    string // graph identifier override
	graphName  string // graph display name
	sourceInfo bool   // attach source spans to nodes and edges
	noCache    bool   // bypass the parse cache
	output     string // output file path (stdout if empty)
}

func (c *CLI) registerParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.backend, "backend", c.Config.Backend, "parser backend (auto, line, grammar)")
	cmd.Flags().StringVar(&flags.graphID, "graph-id", "", "graph identifier (default \"architecture\")")
	cmd.Flags().StringVarP(&flags.graphName, "name", "n", "", "graph display name")
	cmd.Flags().BoolVar(&flags.sourceInfo, "source-info", false, "attach source positions to nodes and edges")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the parse cache")
}

// parseOptions converts parseFlags into dsl.ParseOptions.
func (f *parseFlags) parseOptions() (dsl.ParseOptions, error) {
	backend, err := dsl.ParseBackend(f.backend)
	if err != nil {
		return dsl.ParseOptions{}, errors.Wrap(errors.ErrCodeInvalidBackend, err, "invalid --backend")
	}
	if f.graphID != "" {
		if err := errors.ValidateGraphID(f.graphID); err != nil {
			return dsl.ParseOptions{}, err
		}
	}
	return dsl.ParseOptions{
		Backend:           backend,
		IncludeSourceInfo: f.sourceInfo,
		GraphID:           f.graphID,
		GraphName:         f.graphName,
	}, nil
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an architecture file into graph JSON",
		Long: `Parse an architecture description file and write the resulting graph as JSON.

Use "-" as the file argument to read from stdin.

Examples:
  archtext parse system.arch                 # Graph JSON to stdout
  archtext parse system.arch -o graph.json   # Write to a file
  archtext parse - < system.arch             # Read from stdin
  archtext parse system.arch --backend grammar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], flags)
		},
	}

	c.registerParseFlags(cmd, flags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, path string, flags *parseFlags) error {
	source, err := readInput(path)
	if err != nil {
		return err
	}

	g, cached, err := c.parseSource(ctx, path, source, flags)
	if err != nil {
		return err
	}

	out, err := openOutput(flags.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graph.Write(g, out); err != nil {
		return err
	}
	if flags.output != "" {
		printSuccess("Parsed %s", path)
		printStats(g.NodeCount(), g.EdgeCount(), cached)
		printFile(flags.output)
	}
	return nil
}

// parseSource parses DSL text, consulting the cache first. A cache hit
// returns the stored graph without re-parsing. Parse failures are printed
// as diagnostics and returned as a single summary error.
func (c *CLI) parseSource(ctx context.Context, name, source string, flags *parseFlags) (*graph.Graph, bool, error) {
	opts, err := flags.parseOptions()
	if err != nil {
		return nil, false, err
	}

	store := c.newCache(ctx, flags.noCache)
	defer store.Close()
	key := cache.NewDefaultKeyer().Key("parse", fmt.Sprintf("%s|%s|%v|%s|%s",
		source, opts.Backend, opts.IncludeSourceInfo, opts.GraphID, opts.GraphName))

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		if g, err := graph.Unmarshal(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "parse")
			c.Logger.Debug("Parse cache hit")
			return g, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "parse")

	prog := newProgress(c.Logger)
	start := time.Now()
	observability.Parser().OnParseStart(ctx, opts.Backend.String(), len(source))
	result := dsl.Parse(source, opts)
	if !result.OK() {
		observability.Parser().OnParseComplete(ctx, opts.Backend.String(), 0, len(result.Errors), time.Since(start))
		printDiagnostics(os.Stderr, name, source, result.Errors)
		return nil, false, errors.New(errors.ErrCodeInvalidDSL,
			"%d parse error(s) in %s", len(result.Errors), name)
	}
	observability.Parser().OnParseComplete(ctx, opts.Backend.String(), result.Graph.NodeCount(), 0, time.Since(start))
	prog.done(fmt.Sprintf("Parsed %d nodes and %d edges", result.Graph.NodeCount(), result.Graph.EdgeCount()))

	if data, err := graph.Marshal(result.Graph); err == nil {
		if err := store.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "parse", len(data))
		}
	}
	return result.Graph, false, nil
}
