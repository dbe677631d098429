package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/archtext/archtext/pkg/dsl"
	archerrors "github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/httputil"
	"github.com/archtext/archtext/pkg/observability"
	"github.com/archtext/archtext/pkg/workspace"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	addr  string
	store string // document store backend: memory, file, mongo
}

// serveCommand creates the serve command, which exposes parsing, printing,
// and document storage over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the archtext HTTP API server",
		Long: `Run an HTTP server exposing the parser, printer, and document store.

Endpoints:
  POST   /v1/parse          Parse DSL text into graph JSON
  POST   /v1/print          Print graph JSON as DSL text
  GET    /v1/documents      List stored documents
  PUT    /v1/documents      Create or update a document
  GET    /v1/documents/{id} Fetch a document
  DELETE /v1/documents/{id} Delete a document

Document store backends:
  memory  In-process only (default); documents vanish on restart
  file    One JSON file per document under the data directory
  mongo   MongoDB, using the connection settings from the config file

Examples:
  archtext serve
  archtext serve --addr :9000 --store file
  archtext serve --store mongo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&flags.store, "store", "memory", "document store backend (memory, file, mongo)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags *serveFlags) error {
	store, err := c.newStore(ctx, flags.store)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           c.newRouter(store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", flags.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore creates the document store for the requested backend.
func (c *CLI) newStore(ctx context.Context, backend string) (workspace.Store, error) {
	switch backend {
	case "memory":
		return workspace.NewMemoryStore(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return workspace.NewFileStore(filepath.Join(dir, "documents"))
	case "mongo":
		if c.Config.Mongo.URI == "" {
			return nil, archerrors.New(archerrors.ErrCodeInvalidConfig,
				"mongo store requires a [mongo] uri in the config file")
		}
		return workspace.NewMongoStore(ctx, workspace.MongoConfig{
			URI:        c.Config.Mongo.URI,
			Database:   c.Config.Mongo.Database,
			Collection: c.Config.Mongo.Collection,
		})
	default:
		return nil, archerrors.New(archerrors.ErrCodeInvalidConfig,
			"unknown store backend %q (available: memory, file, mongo)", backend)
	}
}

// newRouter builds the chi router with all API routes registered.
func (c *CLI) newRouter(store workspace.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", c.handleParse)
		r.Post("/print", c.handlePrint)
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", c.handleListDocuments(store))
			r.Put("/", c.handlePutDocument(store))
			r.Get("/{id}", c.handleGetDocument(store))
			r.Delete("/{id}", c.handleDeleteDocument(store))
		})
	})

	return r
}

// requestLogger logs each request and feeds the HTTP observability hooks.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := withLogger(r.Context(), c.Logger)
		observability.HTTP().OnRequest(ctx, r.Method, r.Host, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		elapsed := time.Since(start)

		observability.HTTP().OnResponse(ctx, r.Method, r.Host, r.URL.Path, ww.Status(), elapsed)
		c.Logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (c *CLI) handleParse(w http.ResponseWriter, r *http.Request) {
	var req httputil.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			archerrors.Wrap(archerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	backend, err := dsl.ParseBackend(req.Backend)
	if err != nil {
		writeError(w, http.StatusBadRequest,
			archerrors.Wrap(archerrors.ErrCodeInvalidBackend, err, "invalid backend"))
		return
	}
	if req.GraphID != "" {
		if err := archerrors.ValidateGraphID(req.GraphID); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	result := dsl.Parse(req.Source, dsl.ParseOptions{
		Backend:           backend,
		IncludeSourceInfo: req.SourceInfo,
		GraphID:           req.GraphID,
		GraphName:         req.GraphName,
	})
	if !result.OK() {
		loggerFromContext(r.Context()).Debug("Parse failed", "errors", len(result.Errors))
	}

	// Parse errors are part of the contract, not an HTTP failure.
	writeJSON(w, http.StatusOK, httputil.ParseResponse{
		Graph:  result.Graph,
		Errors: result.Errors,
	})
}

func (c *CLI) handlePrint(w http.ResponseWriter, r *http.Request) {
	var req httputil.PrintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			archerrors.Wrap(archerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Graph == nil {
		writeError(w, http.StatusBadRequest,
			archerrors.New(archerrors.ErrCodeInvalidInput, "missing graph"))
		return
	}
	if req.Indent != "" {
		if err := archerrors.ValidateIndent(req.Indent); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	observability.Parser().OnPrintStart(r.Context(), req.Graph.NodeCount(), req.Graph.EdgeCount())
	start := time.Now()
	out := dsl.Print(req.Graph, dsl.PrintOptions{
		Indent:     req.Indent,
		SortByType: req.SortByType,
	})
	observability.Parser().OnPrintComplete(r.Context(), len(out), time.Since(start))
	writeJSON(w, http.StatusOK, httputil.PrintResponse{Output: out})
}

func (c *CLI) handleListDocuments(store workspace.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := store.List(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (c *CLI) handleGetDocument(store workspace.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func (c *CLI) handlePutDocument(store workspace.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc workspace.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest,
				archerrors.Wrap(archerrors.ErrCodeInvalidInput, err, "invalid request body"))
			return
		}
		if err := archerrors.ValidateDocumentName(doc.Name); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		// Clients may name the document; the ID doubles as a file name in
		// the file store, so it gets the same boundary check as the name.
		if doc.ID == "" {
			created := workspace.New(doc.Name, doc.Source)
			doc = *created
		} else if err := archerrors.ValidateDocumentID(doc.ID); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := store.Put(r.Context(), &doc); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &doc)
	}
}

func (c *CLI) handleDeleteDocument(store workspace.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing to do but log locally.
		fmt.Fprintln(os.Stderr, "write response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, httputil.ErrorResponse{
		Error: archerrors.UserMessage(err),
		Code:  string(archerrors.GetCode(err)),
	})
}

// writeStoreError maps document store errors onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, workspace.ErrInvalidID) {
		writeError(w, http.StatusBadRequest,
			archerrors.Wrap(archerrors.ErrCodeInvalidInput, err, "invalid document id"))
		return
	}
	if errors.Is(err, workspace.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, httputil.ErrorResponse{
			Error: "no such document",
			Code:  string(archerrors.ErrCodeDocumentNotFound),
		})
		return
	}
	writeError(w, http.StatusInternalServerError,
		archerrors.Wrap(archerrors.ErrCodeStorage, err, "document store"))
}
