package store

import (
	"context"
	"fmt"
	"time"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/ninja-software/terror/v2"
)

func categoryFromDocument(doc *docstore.Document) *shopkeeper.Category {
	createdAt := doc.Time("created_at")
	if createdAt.IsZero() {
		createdAt = doc.CreatedAt
	}
	return &shopkeeper.Category{
		ID:        shopkeeper.CategoryID(doc.ID),
		Name:      doc.Str("name"),
		CreatedAt: createdAt,
	}
}

// CategoryList returns all product categories.
func (s *Store) CategoryList(ctx context.Context) ([]*shopkeeper.Category, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.ProductCategories)
	if err != nil {
		return nil, terror.Error(err, "list categories")
	}
	categories := make([]*shopkeeper.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, categoryFromDocument(doc))
	}
	return categories, nil
}

// CategoryIDByName resolves a category name to its document ID. Names act
// as informal unique keys; with duplicates the oldest document wins and a
// warning is logged. Zero matches is a NotFound error.
func (s *Store) CategoryIDByName(ctx context.Context, name string) (shopkeeper.CategoryID, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.ProductCategories,
		docstore.Equal("name", name),
		docstore.OrderAsc("$createdAt"),
	)
	if err != nil {
		return "", terror.Error(err, "resolve category")
	}
	if len(docs) == 0 {
		return "", terror.Error(docstore.ErrNotFound, fmt.Sprintf("Category '%s' not found", name))
	}
	if len(docs) > 1 {
		s.Log.Warn().Str("name", name).Int("matches", len(docs)).Msg("duplicate category names, resolving to oldest")
	}
	return shopkeeper.CategoryID(docs[0].ID), nil
}

// CategoryCreate adds a new product category.
func (s *Store) CategoryCreate(ctx context.Context, name string) (*shopkeeper.Category, error) {
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.ProductCategories, shopkeeper.NewCategoryID().String(), map[string]interface{}{
		"name":       name,
		"created_at": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, terror.Error(err, "create category")
	}
	return categoryFromDocument(doc), nil
}

// CategoriesDelete removes the given categories one by one, returning a
// per-item result list. Deleting a category does not touch its products or
// their stored files.
func (s *Store) CategoriesDelete(ctx context.Context, ids []shopkeeper.CategoryID) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		err := s.Conn.DeleteDocument(ctx, s.Collections.ProductCategories, id.String())
		if err != nil {
			s.Log.Err(err).Str("category_id", id.String()).Msg("delete category")
			results = append(results, BatchResult{ID: id.String(), OK: false, Message: "Error deleting category"})
			continue
		}
		results = append(results, BatchResult{ID: id.String(), OK: true})
	}
	return results
}
