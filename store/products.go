package store

import (
	"context"
	"fmt"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/gosimple/slug"
	"github.com/ninja-software/terror/v2"
)

// ProductListLimit caps the product list read; the admin table renders the
// whole set client-side.
const ProductListLimit = 200

func productFromDocument(doc *docstore.Document) (*shopkeeper.Product, error) {
	images, err := shopkeeper.DecodeFiles(doc.Str("imgurl"))
	if err != nil {
		return nil, terror.Error(err, "decode product images")
	}
	return &shopkeeper.Product{
		ID:          shopkeeper.ProductID(doc.ID),
		Slug:        doc.Str("slug"),
		Name:        doc.Str("name"),
		Description: doc.Str("desc"),
		Color:       doc.Str("color"),
		Length:      doc.Decimal("length"),
		Breadth:     doc.Decimal("width"),
		Height:      doc.Decimal("height"),
		Price:       doc.Decimal("price"),
		SKU:         doc.Str("sku"),
		Archived:    doc.Bool("archived"),
		Featured:    doc.Bool("featured"),
		CategoryID:  shopkeeper.CategoryID(doc.Str("productCategory")),
		Images:      images,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// ProductList returns all products, up to ProductListLimit.
func (s *Store) ProductList(ctx context.Context) ([]*shopkeeper.Product, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.Products, docstore.Limit(ProductListLimit))
	if err != nil {
		return nil, terror.Error(err, "list products")
	}
	products := make([]*shopkeeper.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := productFromDocument(doc)
		if err != nil {
			return nil, terror.Error(err)
		}
		products = append(products, product)
	}
	return products, nil
}

// ProductGet returns a product by ID.
func (s *Store) ProductGet(ctx context.Context, id shopkeeper.ProductID) (*shopkeeper.Product, error) {
	doc, err := s.Conn.GetDocument(ctx, s.Collections.Products, id.String())
	if err != nil {
		return nil, terror.Error(err, "get product")
	}
	return productFromDocument(doc)
}

func productFields(product *shopkeeper.Product) (map[string]interface{}, error) {
	imgurl, err := shopkeeper.EncodeFiles(product.Images)
	if err != nil {
		return nil, terror.Error(err)
	}
	length, _ := product.Length.Float64()
	breadth, _ := product.Breadth.Float64()
	height, _ := product.Height.Float64()
	price, _ := product.Price.Float64()
	return map[string]interface{}{
		"slug":            slug.Make(product.Name),
		"name":            product.Name,
		"desc":            product.Description,
		"color":           product.Color,
		"length":          length,
		"width":           breadth,
		"height":          height,
		"price":           price,
		"sku":             product.SKU,
		"archived":        product.Archived,
		"featured":        product.Featured,
		"imgurl":          imgurl,
		"productCategory": product.CategoryID.String(),
	}, nil
}

// ProductCreate persists a new product. The caller supplies the category by
// name; resolution to an ID happens here, before the document write. The
// images list must already be uploaded and non-empty.
func (s *Store) ProductCreate(ctx context.Context, product *shopkeeper.Product, categoryName string) error {
	if len(product.Images) == 0 {
		return terror.Error(fmt.Errorf("product has no images"), "At least one image is required")
	}
	categoryID, err := s.CategoryIDByName(ctx, categoryName)
	if err != nil {
		return terror.Error(err)
	}
	product.CategoryID = categoryID

	if product.ID.IsNil() {
		product.ID = shopkeeper.NewProductID()
	}
	fields, err := productFields(product)
	if err != nil {
		return terror.Error(err)
	}
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.Products, product.ID.String(), fields)
	if err != nil {
		return terror.Error(err, "create product")
	}
	product.Slug = doc.Str("slug")
	product.CreatedAt = doc.CreatedAt
	product.UpdatedAt = doc.UpdatedAt
	return nil
}

// ProductUpdate patches an existing product's scalar fields. Images are not
// replaced on update, matching the admin panel's edit form.
func (s *Store) ProductUpdate(ctx context.Context, id shopkeeper.ProductID, product *shopkeeper.Product) error {
	length, _ := product.Length.Float64()
	breadth, _ := product.Breadth.Float64()
	height, _ := product.Height.Float64()
	price, _ := product.Price.Float64()
	_, err := s.Conn.UpdateDocument(ctx, s.Collections.Products, id.String(), map[string]interface{}{
		"slug":     slug.Make(product.Name),
		"name":     product.Name,
		"desc":     product.Description,
		"color":    product.Color,
		"length":   length,
		"width":    breadth,
		"height":   height,
		"price":    price,
		"sku":      product.SKU,
		"archived": product.Archived,
		"featured": product.Featured,
	})
	if err != nil {
		return terror.Error(err, "update product")
	}
	return nil
}

// ProductsDelete removes the given products one by one, returning a
// per-item result list. Stored image files are not cascaded.
func (s *Store) ProductsDelete(ctx context.Context, ids []shopkeeper.ProductID) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		err := s.Conn.DeleteDocument(ctx, s.Collections.Products, id.String())
		if err != nil {
			s.Log.Err(err).Str("product_id", id.String()).Msg("delete product")
			results = append(results, BatchResult{ID: id.String(), OK: false, Message: "Error deleting product"})
			continue
		}
		results = append(results, BatchResult{ID: id.String(), OK: true})
	}
	return results
}

// InventoryCreate writes the stock side-record for a product SKU.
func (s *Store) InventoryCreate(ctx context.Context, sku string, quantity int) (string, error) {
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.ProductInventory, shopkeeper.NewProductID().String(), map[string]interface{}{
		"sku":      sku,
		"quantity": quantity,
	})
	if err != nil {
		return "", terror.Error(err, "create inventory entry")
	}
	return doc.ID, nil
}
