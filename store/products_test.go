package store_test

import (
	"context"
	"testing"

	"shopkeeper"
	"shopkeeper/docstore"
	"shopkeeper/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *shopkeeper.Product {
	return &shopkeeper.Product{
		Name:        "Wool Socks",
		Description: "Warm socks",
		Color:       "grey",
		Length:      decimal.NewFromInt(10),
		Breadth:     decimal.NewFromInt(5),
		Height:      decimal.NewFromInt(2),
		Price:       decimal.RequireFromString("12.50"),
		SKU:         "SOCK-01",
		Images: []shopkeeper.UploadedFile{
			{ID: "file1", Name: "socks.png", PreviewURL: "https://backend.example.com/preview/file1"},
		},
	}
}

func TestProductCreate(t *testing.T) {
	conn := newFakeConn()
	conn.add("product-categories", &docstore.Document{ID: "cat1", Fields: map[string]interface{}{"name": "Socks"}})
	s := newStore(conn)

	product := testProduct()
	err := s.ProductCreate(context.Background(), product, "Socks")
	require.NoError(t, err)

	assert.Equal(t, shopkeeper.CategoryID("cat1"), product.CategoryID)
	assert.False(t, product.ID.IsNil())
	assert.Equal(t, "wool-socks", product.Slug)

	// Round trip through the document shape.
	got, err := s.ProductGet(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wool Socks", got.Name)
	assert.Equal(t, "12.5", got.Price.String())
	assert.Equal(t, shopkeeper.CategoryID("cat1"), got.CategoryID)
	require.Len(t, got.Images, 1)
	assert.Equal(t, shopkeeper.FileID("file1"), got.Images[0].ID)
	assert.Equal(t, "https://backend.example.com/preview/file1", got.Images[0].PreviewURL)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	conn := newFakeConn()
	s := newStore(conn)

	err := s.ProductCreate(context.Background(), testProduct(), "Gloves")
	require.Error(t, err)
	// Resolution failed, so no document was ever written.
	assert.Empty(t, conn.created)
}

func TestProductCreateNoImages(t *testing.T) {
	conn := newFakeConn()
	conn.add("product-categories", &docstore.Document{ID: "cat1", Fields: map[string]interface{}{"name": "Socks"}})
	s := newStore(conn)

	product := testProduct()
	product.Images = nil
	err := s.ProductCreate(context.Background(), product, "Socks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "At least one image is required")
	assert.Empty(t, conn.created)
}

func TestProductUpdateKeepsImages(t *testing.T) {
	conn := newFakeConn()
	conn.add("product-categories", &docstore.Document{ID: "cat1", Fields: map[string]interface{}{"name": "Socks"}})
	s := newStore(conn)

	product := testProduct()
	require.NoError(t, s.ProductCreate(context.Background(), product, "Socks"))

	edited := testProduct()
	edited.Name = "Cotton Socks"
	edited.Price = decimal.RequireFromString("9.99")
	err := s.ProductUpdate(context.Background(), product.ID, edited)
	require.NoError(t, err)

	got, err := s.ProductGet(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cotton Socks", got.Name)
	assert.Equal(t, "cotton-socks", got.Slug)
	assert.Equal(t, "9.99", got.Price.String())
	// The edit form carries no images; the stored ones survive the patch.
	require.Len(t, got.Images, 1)
	assert.Equal(t, shopkeeper.FileID("file1"), got.Images[0].ID)
	// The category is not editable either.
	assert.Equal(t, shopkeeper.CategoryID("cat1"), got.CategoryID)
}

func TestProductsDeletePartialFailure(t *testing.T) {
	conn := newFakeConn()
	for _, id := range []string{"p1", "p2"} {
		conn.add("products", &docstore.Document{ID: id, Fields: map[string]interface{}{"name": id}})
	}
	conn.failDeleteDoc["p1"] = true
	s := newStore(conn)

	results := s.ProductsDelete(context.Background(), []shopkeeper.ProductID{"p1", "p2"})
	require.Len(t, results, 2)
	assert.False(t, results[0].OK)
	assert.True(t, results[1].OK)
	assert.False(t, store.BatchOK(results))
	assert.Equal(t, []string{"p2"}, conn.deletedDocs)
}

func TestInventoryCreate(t *testing.T) {
	conn := newFakeConn()
	s := newStore(conn)

	id, err := s.InventoryCreate(context.Background(), "SOCK-01", 40)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	docs, err := conn.ListDocuments(context.Background(), "product-inventory")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "SOCK-01", docs[0].Str("sku"))
}
