package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/httputil"
	"github.com/archtext/archtext/pkg/workspace"
)

// docsFlags holds flags shared by the docs subcommands.
type docsFlags struct {
	server string // remote server URL; empty means the local file store
}

// docsCommand creates the docs command tree for managing stored documents.
func (c *CLI) docsCommand() *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage stored architecture documents",
		Long: `Manage the library of stored architecture documents.

By default documents live in the local data directory. With --server (or
a server URL in the config file), commands operate on a running
"archtext serve" instance instead.`,
	}

	cmd.PersistentFlags().StringVar(&flags.server, "server", c.Config.Server.URL, "remote server URL (empty for local storage)")

	cmd.AddCommand(c.docsListCommand(flags))
	cmd.AddCommand(c.docsAddCommand(flags))
	cmd.AddCommand(c.docsShowCommand(flags))
	cmd.AddCommand(c.docsRemoveCommand(flags))

	return cmd
}

// docStore abstracts local and remote document access for the docs commands.
type docStore interface {
	List(ctx context.Context) ([]*workspace.Document, error)
	Get(ctx context.Context, id string) (*workspace.Document, error)
	Put(ctx context.Context, doc *workspace.Document) (*workspace.Document, error)
	Delete(ctx context.Context, id string) error
}

// newDocStore returns a remote store when a server URL is configured,
// otherwise the local file store.
func (c *CLI) newDocStore(flags *docsFlags) (docStore, error) {
	if flags.server != "" {
		client, err := httputil.NewClient(flags.server)
		if err != nil {
			return nil, err
		}
		return remoteDocStore{client}, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	fs, err := workspace.NewFileStore(filepath.Join(dir, "documents"))
	if err != nil {
		return nil, err
	}
	return localDocStore{fs}, nil
}

// localDocStore adapts workspace.Store to the docStore shape.
type localDocStore struct{ store workspace.Store }

func (s localDocStore) List(ctx context.Context) ([]*workspace.Document, error) {
	return s.store.List(ctx)
}
func (s localDocStore) Get(ctx context.Context, id string) (*workspace.Document, error) {
	return s.store.Get(ctx, id)
}
func (s localDocStore) Put(ctx context.Context, doc *workspace.Document) (*workspace.Document, error) {
	if err := s.store.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
func (s localDocStore) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// remoteDocStore adapts httputil.Client to the docStore shape.
type remoteDocStore struct{ client *httputil.Client }

func (s remoteDocStore) List(ctx context.Context) ([]*workspace.Document, error) {
	return s.client.ListDocuments(ctx)
}
func (s remoteDocStore) Get(ctx context.Context, id string) (*workspace.Document, error) {
	return s.client.GetDocument(ctx, id)
}
func (s remoteDocStore) Put(ctx context.Context, doc *workspace.Document) (*workspace.Document, error) {
	return s.client.PutDocument(ctx, doc)
}
func (s remoteDocStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteDocument(ctx, id)
}

// =============================================================================
// Subcommands
// =============================================================================

func (c *CLI) docsListCommand(flags *docsFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newDocStore(flags)
			if err != nil {
				return err
			}
			docs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No documents stored")
				printNextStep("Add one", "archtext docs add <name> <file>")
				return nil
			}
			for _, doc := range docs {
				printKeyValue(doc.Name, fmt.Sprintf("%s  %s",
					doc.ID, StyleDim.Render(doc.UpdatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

func (c *CLI) docsAddCommand(flags *docsFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Store a document from a file (use \"-\" for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			if err := errors.ValidateDocumentName(name); err != nil {
				return err
			}
			source, err := readInput(path)
			if err != nil {
				return err
			}

			store, err := c.newDocStore(flags)
			if err != nil {
				return err
			}
			doc, err := store.Put(cmd.Context(), workspace.New(name, source))
			if err != nil {
				return err
			}
			printSuccess("Stored %s", doc.Name)
			printDetail("ID: %s", doc.ID)
			return nil
		},
	}
}

func (c *CLI) docsShowCommand(flags *docsFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a document's source (interactive picker without an ID)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newDocStore(flags)
			if err != nil {
				return err
			}
			doc, err := c.resolveDocument(cmd.Context(), store, args)
			if err != nil {
				return err
			}
			fmt.Print(doc.Source)
			return nil
		},
	}
}

func (c *CLI) docsRemoveCommand(flags *docsFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a document (interactive picker without an ID)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newDocStore(flags)
			if err != nil {
				return err
			}
			doc, err := c.resolveDocument(cmd.Context(), store, args)
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), doc.ID); err != nil {
				return err
			}
			printSuccess("Deleted %s", doc.Name)
			return nil
		},
	}
}

// resolveDocument fetches the document named on the command line, or runs
// the interactive picker when no ID was given.
func (c *CLI) resolveDocument(ctx context.Context, store docStore, args []string) (*workspace.Document, error) {
	if len(args) == 1 {
		return store.Get(ctx, args[0])
	}

	docs, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "no documents stored")
	}
	return pickDocument(docs)
}
