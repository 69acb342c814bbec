package api

import (
	"context"
	"net/http"

	"shopkeeper"
	"shopkeeper/cache"
	"shopkeeper/forms"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
)

// BillboardController holds connection data for handlers
type BillboardController struct {
	API *API
}

func BillboardRouter(api *API) chi.Router {
	c := &BillboardController{API: api}

	r := chi.NewRouter()
	r.Get("/", WithError(c.List))
	r.Post("/", WithError(WithMember(api, c.Create)))
	r.Delete("/{id}", WithError(WithMember(api, c.Delete)))

	return r
}

func (c *BillboardController) cachedList(ctx context.Context) ([]*shopkeeper.Billboard, error) {
	v, err := c.API.Cache.Get(ctx, cache.KeyBillboards, func(ctx context.Context) (interface{}, error) {
		return c.API.Store.BillboardList(ctx)
	})
	if err != nil {
		return nil, terror.Error(err)
	}
	return v.([]*shopkeeper.Billboard), nil
}

// List returns every billboard. Served publicly so the storefront can
// render them.
func (c *BillboardController) List(w http.ResponseWriter, r *http.Request) (int, error) {
	billboards, err := c.cachedList(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching billboards")
	}
	return respondJSON(w, http.StatusOK, billboards)
}

// Create validates the billboard form, uploads its image, then persists the
// document. The image upload resolves before the document write so the
// stored reference never points at a missing file.
func (c *BillboardController) Create(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	err := r.ParseMultipartForm(maxUploadMemoryBytes)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	parts := r.MultipartForm.File["image"]

	form := &forms.BillboardForm{
		Title:      r.FormValue("title"),
		ImageCount: len(parts),
	}
	if errs := form.Validate(); errs != nil {
		return respondValidationErrors(w, errs)
	}

	files, err := filesFromMultipart(parts[:1])
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Error reading image")
	}
	images, err := c.API.Uploader.Upload(r.Context(), files)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error uploading image")
	}

	billboard := &shopkeeper.Billboard{
		Title: form.Title,
		Image: images[0],
	}
	err = c.API.Store.BillboardCreate(r.Context(), billboard)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error adding billboard")
	}
	c.API.Cache.InvalidateMutation(cache.MutationBillboardCreate)
	return respondJSON(w, http.StatusCreated, billboard)
}

// Delete removes a billboard and its stored image.
func (c *BillboardController) Delete(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no id provided")
	}
	err := c.API.Store.BillboardDelete(r.Context(), shopkeeper.BillboardID(id))
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error deleting billboard")
	}
	c.API.Cache.InvalidateMutation(cache.MutationBillboardDelete)
	return respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
