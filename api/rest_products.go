package api

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"shopkeeper"
	"shopkeeper/cache"
	"shopkeeper/forms"
	"shopkeeper/store"
	"shopkeeper/uploader"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
)

// maxUploadMemoryBytes is the in-memory buffer for multipart parsing.
const maxUploadMemoryBytes = 32 * 1024 * 1024

// ProductController holds connection data for handlers
type ProductController struct {
	API *API
}

func ProductRouter(api *API, public func(next http.Handler) http.Handler) chi.Router {
	c := &ProductController{API: api}

	r := chi.NewRouter()
	// Storefront reads, kept at their original paths.
	r.Get("/fetch-all-products", public(WithError(c.FetchAll)).ServeHTTP)
	r.Get("/fetch-product", public(WithError(c.FetchOne)).ServeHTTP)
	r.Get("/fetch-all-categories", public(WithError(c.FetchAllCategories)).ServeHTTP)

	r.Get("/", WithError(WithMember(api, c.List)))
	r.Post("/", WithError(WithMember(api, c.Create)))
	r.Patch("/{id}", WithError(WithMember(api, c.Update)))
	r.Post("/delete", WithError(WithMember(api, c.Delete)))

	return r
}

func (c *ProductController) cachedList(ctx context.Context) ([]*shopkeeper.Product, error) {
	v, err := c.API.Cache.Get(ctx, cache.KeyProducts, func(ctx context.Context) (interface{}, error) {
		return c.API.Store.ProductList(ctx)
	})
	if err != nil {
		return nil, terror.Error(err)
	}
	return v.([]*shopkeeper.Product), nil
}

// FetchAll returns every product.
func (c *ProductController) FetchAll(w http.ResponseWriter, r *http.Request) (int, error) {
	products, err := c.cachedList(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching products")
	}
	return respondJSON(w, http.StatusOK, products)
}

// FetchOne returns a product by the productId query parameter.
func (c *ProductController) FetchOne(w http.ResponseWriter, r *http.Request) (int, error) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no productId provided")
	}
	product, err := c.API.Store.ProductGet(r.Context(), shopkeeper.ProductID(productID))
	if err != nil {
		return http.StatusNotFound, terror.Error(err, "Product not found")
	}
	return respondJSON(w, http.StatusOK, product)
}

// FetchAllCategories returns every product category.
func (c *ProductController) FetchAllCategories(w http.ResponseWriter, r *http.Request) (int, error) {
	v, err := c.API.Cache.Get(r.Context(), cache.KeyProductCategories, func(ctx context.Context) (interface{}, error) {
		return c.API.Store.CategoryList(ctx)
	})
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching categories")
	}
	return respondJSON(w, http.StatusOK, v)
}

// List returns products in the admin table's order, honouring its
// filter/sort controls.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	products, err := c.cachedList(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching products")
	}

	byID := make(map[string]*shopkeeper.Product, len(products))
	rows := make([]store.Row, 0, len(products))
	for _, product := range products {
		byID[product.ID.String()] = product
		rows = append(rows, store.Row{
			"id":    product.ID.String(),
			"name":  product.Name,
			"sku":   product.SKU,
			"color": product.Color,
			"price": product.Price.String(),
		})
	}
	rows = applyListing(r, rows)

	out := make([]*shopkeeper.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, byID[row["id"]])
	}
	return respondJSON(w, http.StatusOK, out)
}

// filesFromMultipart reads the named multipart file parts in submission
// order.
func filesFromMultipart(parts []*multipart.FileHeader) ([]uploader.File, error) {
	files := make([]uploader.File, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			return nil, terror.Error(err, "read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, terror.Error(err, "read uploaded file")
		}
		files = append(files, uploader.File{Name: part.Filename, Data: data})
	}
	return files, nil
}

// Create validates the product form, uploads its images, then persists the
// document. The create call is never issued before every upload has
// resolved.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	err := r.ParseMultipartForm(maxUploadMemoryBytes)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	parts := r.MultipartForm.File["images"]

	form := &forms.ProductForm{
		Name:       r.FormValue("product_name"),
		Desc:       r.FormValue("product_desc"),
		Category:   r.FormValue("product_category"),
		Color:      r.FormValue("product_color"),
		Length:     r.FormValue("product_length"),
		Breadth:    r.FormValue("product_breadth"),
		Height:     r.FormValue("product_height"),
		Price:      r.FormValue("product_price"),
		SKU:        r.FormValue("sku"),
		Archived:   r.FormValue("archived") == "true",
		Featured:   r.FormValue("featured") == "true",
		ImageCount: len(parts),
	}
	product, errs := form.Validate()
	if errs != nil {
		return respondValidationErrors(w, errs)
	}

	files, err := filesFromMultipart(parts)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Error reading images")
	}
	images, err := c.API.Uploader.Upload(r.Context(), files)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error uploading images")
	}
	product.Images = images

	err = c.API.Store.ProductCreate(r.Context(), product, form.Category)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error adding product")
	}

	if quantity, qErr := strconv.Atoi(r.FormValue("quantity")); qErr == nil && quantity > 0 {
		_, err = c.API.Store.InventoryCreate(r.Context(), product.SKU, quantity)
		if err != nil {
			c.API.Log.Err(err).Str("sku", product.SKU).Msg("create inventory entry")
		}
	}

	c.API.Cache.InvalidateMutation(cache.MutationProductCreate)
	return respondJSON(w, http.StatusCreated, product)
}

// Update applies a full-document patch to a product.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no id provided")
	}
	form := &forms.UpdateProductForm{}
	err := json.NewDecoder(r.Body).Decode(form)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	product, errs := form.Validate()
	if errs != nil {
		return respondValidationErrors(w, errs)
	}

	err = c.API.Store.ProductUpdate(r.Context(), shopkeeper.ProductID(id), product)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error updating product")
	}
	c.API.Cache.InvalidateMutation(cache.MutationProductUpdate)
	return respondJSON(w, http.StatusOK, product)
}

// Delete removes the selected products sequentially, returning per-item
// results.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	selection := &store.Selection{}
	err := json.NewDecoder(r.Body).Decode(selection)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	ids := make([]shopkeeper.ProductID, 0, len(selection.IDs))
	for _, id := range selection.IDs {
		ids = append(ids, shopkeeper.ProductID(id))
	}

	results := c.API.Store.ProductsDelete(r.Context(), ids)
	c.API.Cache.InvalidateMutation(cache.MutationProductsDelete)
	return respondJSON(w, http.StatusOK, struct {
		OK      bool                `json:"ok"`
		Results []store.BatchResult `json:"results"`
	}{
		OK:      store.BatchOK(results),
		Results: results,
	})
}
