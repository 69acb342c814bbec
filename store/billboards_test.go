package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillboardCreateAndList(t *testing.T) {
	conn := newFakeConn()
	s := newStore(conn)

	billboard := &shopkeeper.Billboard{
		Title: "Summer Sale",
		Image: shopkeeper.UploadedFile{ID: "file1", Name: "sale.png", PreviewURL: "https://backend.example.com/preview/file1"},
	}
	err := s.BillboardCreate(context.Background(), billboard)
	require.NoError(t, err)
	assert.False(t, billboard.ID.IsNil())

	billboards, err := s.BillboardList(context.Background())
	require.NoError(t, err)
	require.Len(t, billboards, 1)
	assert.Equal(t, "Summer Sale", billboards[0].Title)
	assert.Equal(t, shopkeeper.FileID("file1"), billboards[0].Image.ID)
}

func TestBillboardIDByTitle(t *testing.T) {
	conn := newFakeConn()
	conn.add("billboards", &docstore.Document{
		ID:        "bb-new",
		CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Fields:    map[string]interface{}{"title": "Summer Sale"},
	})
	conn.add("billboards", &docstore.Document{
		ID:        "bb-old",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Fields:    map[string]interface{}{"title": "Summer Sale"},
	})
	s := newStore(conn)

	t.Run("duplicates_resolve_to_oldest", func(t *testing.T) {
		id, err := s.BillboardIDByTitle(context.Background(), "Summer Sale")
		require.NoError(t, err)
		assert.Equal(t, shopkeeper.BillboardID("bb-old"), id)
	})

	t.Run("missing_is_not_found", func(t *testing.T) {
		_, err := s.BillboardIDByTitle(context.Background(), "Winter Sale")
		require.Error(t, err)
		assert.True(t, errors.Is(err, docstore.ErrNotFound))
		assert.Contains(t, err.Error(), "Billboard 'Winter Sale' not found")
	})
}

func TestBillboardDeleteCascadesFile(t *testing.T) {
	conn := newFakeConn()
	s := newStore(conn)

	billboard := &shopkeeper.Billboard{
		Title: "Summer Sale",
		Image: shopkeeper.UploadedFile{ID: "file1", Name: "sale.png"},
	}
	require.NoError(t, s.BillboardCreate(context.Background(), billboard))

	err := s.BillboardDelete(context.Background(), billboard.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"file1"}, conn.deletedFiles)
	assert.Equal(t, []string{billboard.ID.String()}, conn.deletedDocs)
}

func TestBillboardDeleteFileFailureKeepsDocument(t *testing.T) {
	conn := newFakeConn()
	s := newStore(conn)

	billboard := &shopkeeper.Billboard{
		Title: "Summer Sale",
		Image: shopkeeper.UploadedFile{ID: "file1", Name: "sale.png"},
	}
	require.NoError(t, s.BillboardCreate(context.Background(), billboard))
	conn.failDeleteFile = true

	err := s.BillboardDelete(context.Background(), billboard.ID)
	require.Error(t, err)
	// File deletion goes first; when it fails the document stays so its
	// image reference never dangles.
	assert.Empty(t, conn.deletedDocs)

	billboards, err := s.BillboardList(context.Background())
	require.NoError(t, err)
	assert.Len(t, billboards, 1)
}
