// Package store implements the back office's data operations over the
// document backend: one file per entity, name-to-ID resolution, and batch
// deletes with per-item results.
package store

import (
	"context"

	"shopkeeper/docstore"

	"github.com/rs/zerolog"
)

// Conn is the slice of the backend client the store needs. Tests substitute
// a fake.
type Conn interface {
	ListDocuments(ctx context.Context, collectionID string, queries ...docstore.Query) ([]*docstore.Document, error)
	GetDocument(ctx context.Context, collectionID string, documentID string) (*docstore.Document, error)
	CreateDocument(ctx context.Context, collectionID string, documentID string, fields map[string]interface{}) (*docstore.Document, error)
	UpdateDocument(ctx context.Context, collectionID string, documentID string, fields map[string]interface{}) (*docstore.Document, error)
	DeleteDocument(ctx context.Context, collectionID string, documentID string) error
	DeleteFile(ctx context.Context, fileID string) error
}

// Collections holds the backend collection IDs, one per entity type.
type Collections struct {
	Users             string
	Products          string
	ProductCategories string
	ProductInventory  string
	Billboards        string
	Pages             string
}

// DefaultCollections matches the backend project's collection naming.
func DefaultCollections() Collections {
	return Collections{
		Users:             "users",
		Products:          "products",
		ProductCategories: "product-categories",
		ProductInventory:  "product-inventory",
		Billboards:        "billboards",
		Pages:             "pages",
	}
}

type Store struct {
	Conn        Conn
	Collections Collections
	Log         *zerolog.Logger
}

func New(conn Conn, collections Collections, log *zerolog.Logger) *Store {
	return &Store{
		Conn:        conn,
		Collections: collections,
		Log:         log,
	}
}

// BatchResult reports the outcome of one item in a batch delete. Batch
// deletes run sequentially and are not transactional; callers reconcile
// partial failure from this list.
type BatchResult struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// BatchOK reports whether every item in a batch succeeded.
func BatchOK(results []BatchResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
