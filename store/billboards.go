package store

import (
	"context"
	"fmt"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/ninja-software/terror/v2"
)

func billboardFromDocument(doc *docstore.Document) (*shopkeeper.Billboard, error) {
	image, err := shopkeeper.DecodeFile(doc.Str("image"))
	if err != nil {
		return nil, terror.Error(err, "decode billboard image")
	}
	return &shopkeeper.Billboard{
		ID:        shopkeeper.BillboardID(doc.ID),
		Title:     doc.Str("title"),
		Image:     image,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// BillboardList returns all billboards.
func (s *Store) BillboardList(ctx context.Context) ([]*shopkeeper.Billboard, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.Billboards)
	if err != nil {
		return nil, terror.Error(err, "list billboards")
	}
	billboards := make([]*shopkeeper.Billboard, 0, len(docs))
	for _, doc := range docs {
		billboard, err := billboardFromDocument(doc)
		if err != nil {
			return nil, terror.Error(err)
		}
		billboards = append(billboards, billboard)
	}
	return billboards, nil
}

// BillboardIDByTitle resolves a billboard title to its document ID, with the
// same oldest-first duplicate handling as category names.
func (s *Store) BillboardIDByTitle(ctx context.Context, title string) (shopkeeper.BillboardID, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.Billboards,
		docstore.Equal("title", title),
		docstore.OrderAsc("$createdAt"),
	)
	if err != nil {
		return "", terror.Error(err, "resolve billboard")
	}
	if len(docs) == 0 {
		return "", terror.Error(docstore.ErrNotFound, fmt.Sprintf("Billboard '%s' not found", title))
	}
	if len(docs) > 1 {
		s.Log.Warn().Str("title", title).Int("matches", len(docs)).Msg("duplicate billboard titles, resolving to oldest")
	}
	return shopkeeper.BillboardID(docs[0].ID), nil
}

// BillboardCreate persists a new billboard. The image must already be
// uploaded.
func (s *Store) BillboardCreate(ctx context.Context, billboard *shopkeeper.Billboard) error {
	image, err := shopkeeper.EncodeFile(billboard.Image)
	if err != nil {
		return terror.Error(err)
	}
	if billboard.ID.IsNil() {
		billboard.ID = shopkeeper.NewBillboardID()
	}
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.Billboards, billboard.ID.String(), map[string]interface{}{
		"title": billboard.Title,
		"image": image,
	})
	if err != nil {
		return terror.Error(err, "create billboard")
	}
	billboard.CreatedAt = doc.CreatedAt
	return nil
}

// BillboardDelete removes a billboard and its stored image file. The file
// goes first; if that fails the document is left in place so the reference
// never dangles.
func (s *Store) BillboardDelete(ctx context.Context, id shopkeeper.BillboardID) error {
	doc, err := s.Conn.GetDocument(ctx, s.Collections.Billboards, id.String())
	if err != nil {
		return terror.Error(err, "get billboard")
	}
	billboard, err := billboardFromDocument(doc)
	if err != nil {
		return terror.Error(err)
	}
	if !billboard.Image.ID.IsNil() {
		err = s.Conn.DeleteFile(ctx, billboard.Image.ID.String())
		if err != nil {
			return terror.Error(err, "delete billboard image")
		}
	}
	err = s.Conn.DeleteDocument(ctx, s.Collections.Billboards, id.String())
	if err != nil {
		return terror.Error(err, "delete billboard")
	}
	return nil
}
