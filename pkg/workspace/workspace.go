// Package workspace persists DSL documents: the architecture descriptions
// users author, identified by generated IDs and a display name.
//
// This is the collaborator-side storage the surrounding application uses
// to load and save DSL text. It never interprets the text: parsing and
// printing stay in pkg/dsl, and UI state (panel layouts, filters) is out
// of scope entirely.
//
// Three Store implementations exist:
//   - memory: in-memory storage for development/testing
//   - file: one JSON file per document, for CLI usage
//   - mongo: document database for multi-instance server deployments
package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned for document IDs a store cannot address
	// safely, such as IDs containing path separators.
	ErrInvalidID = errors.New("invalid document id")
)

// Document is a stored DSL source text with identity and timestamps.
// Source is kept verbatim, including comments and formatting; canonical
// formatting is a caller decision, not a storage side effect.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates a document with a fresh ID and both timestamps set to now.
func New(name, source string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, updating UpdatedAt. New documents are
	// created; existing IDs are overwritten.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all documents sorted by name.
	List(ctx context.Context) ([]*Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
