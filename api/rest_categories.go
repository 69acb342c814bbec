package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"shopkeeper"
	"shopkeeper/cache"
	"shopkeeper/forms"
	"shopkeeper/store"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
)

// CategoryController holds connection data for handlers
type CategoryController struct {
	API *API
}

func CategoryRouter(api *API) chi.Router {
	c := &CategoryController{API: api}

	r := chi.NewRouter()
	r.Get("/", WithError(WithMember(api, c.List)))
	r.Post("/", WithError(WithMember(api, c.Create)))
	r.Post("/delete", WithError(WithMember(api, c.Delete)))

	return r
}

func (c *CategoryController) cachedList(ctx context.Context) ([]*shopkeeper.Category, error) {
	v, err := c.API.Cache.Get(ctx, cache.KeyProductCategories, func(ctx context.Context) (interface{}, error) {
		return c.API.Store.CategoryList(ctx)
	})
	if err != nil {
		return nil, terror.Error(err)
	}
	return v.([]*shopkeeper.Category), nil
}

// List returns categories in the admin table's order, honouring its
// filter/sort controls.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	categories, err := c.cachedList(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching categories")
	}

	byID := make(map[string]*shopkeeper.Category, len(categories))
	rows := make([]store.Row, 0, len(categories))
	for _, category := range categories {
		byID[category.ID.String()] = category
		rows = append(rows, store.Row{
			"id":        category.ID.String(),
			"name":      category.Name,
			"createdAt": category.CreatedAt.Format(time.RFC3339),
		})
	}
	rows = applyListing(r, rows)

	out := make([]*shopkeeper.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, byID[row["id"]])
	}
	return respondJSON(w, http.StatusOK, out)
}

// Create adds a category after form validation.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	form := &forms.CategoryForm{}
	err := json.NewDecoder(r.Body).Decode(form)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	if errs := form.Validate(); errs != nil {
		return respondValidationErrors(w, errs)
	}

	category, err := c.API.Store.CategoryCreate(r.Context(), form.Name)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error adding category")
	}
	c.API.Cache.InvalidateMutation(cache.MutationCategoryCreate)
	return respondJSON(w, http.StatusCreated, category)
}

// Delete removes the selected categories sequentially, returning per-item
// results. Some deletions may have landed even when the batch reports not
// ok.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	selection := &store.Selection{}
	err := json.NewDecoder(r.Body).Decode(selection)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	ids := make([]shopkeeper.CategoryID, 0, len(selection.IDs))
	for _, id := range selection.IDs {
		ids = append(ids, shopkeeper.CategoryID(id))
	}

	results := c.API.Store.CategoriesDelete(r.Context(), ids)
	c.API.Cache.InvalidateMutation(cache.MutationCategoriesDelete)
	return respondJSON(w, http.StatusOK, struct {
		OK      bool                `json:"ok"`
		Results []store.BatchResult `json:"results"`
	}{
		OK:      store.BatchOK(results),
		Results: results,
	})
}
