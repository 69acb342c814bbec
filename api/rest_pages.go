package api

import (
	"context"
	"encoding/json"
	"net/http"

	"shopkeeper"
	"shopkeeper/cache"
	"shopkeeper/forms"
	"shopkeeper/store"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
)

// PageController holds connection data for handlers
type PageController struct {
	API *API
}

func PageRouter(api *API) chi.Router {
	c := &PageController{API: api}

	r := chi.NewRouter()
	// Storefront read, kept at its original path.
	r.Post("/fetch-pageItem", WithError(c.FetchOne))

	r.Get("/", WithError(WithMember(api, c.List)))
	r.Post("/", WithError(WithMember(api, c.Create)))
	r.Patch("/update-pageItem", WithError(WithMember(api, c.Update)))
	r.Delete("/{id}", WithError(WithMember(api, c.DeleteOne)))
	r.Post("/delete", WithError(WithMember(api, c.Delete)))

	return r
}

func (c *PageController) cachedList(ctx context.Context) ([]*shopkeeper.Page, error) {
	v, err := c.API.Cache.Get(ctx, cache.KeyPages, func(ctx context.Context) (interface{}, error) {
		return c.API.Store.PageList(ctx)
	})
	if err != nil {
		return nil, terror.Error(err)
	}
	return v.([]*shopkeeper.Page), nil
}

// List returns pages in the admin table's order, honouring its filter/sort
// controls.
func (c *PageController) List(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	pages, err := c.cachedList(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error fetching pages")
	}

	byID := make(map[string]*shopkeeper.Page, len(pages))
	rows := make([]store.Row, 0, len(pages))
	for _, page := range pages {
		byID[page.ID.String()] = page
		rows = append(rows, store.Row{
			"id":           page.ID.String(),
			"href":         page.Href,
			"headerOption": string(page.Header.Kind),
		})
	}
	rows = applyListing(r, rows)

	out := make([]*shopkeeper.Page, 0, len(rows))
	for _, row := range rows {
		out = append(out, byID[row["id"]])
	}
	return respondJSON(w, http.StatusOK, out)
}

// FetchOneRequest asks for a single page by ID.
type FetchOneRequest struct {
	PageID string `json:"pageId"`
}

// FetchOne returns a single page for the storefront.
func (c *PageController) FetchOne(w http.ResponseWriter, r *http.Request) (int, error) {
	req := &FetchOneRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	if req.PageID == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no pageId provided")
	}

	v, err := c.API.Cache.Get(r.Context(), cache.PageItemKey(req.PageID), func(ctx context.Context) (interface{}, error) {
		return c.API.Store.PageGet(ctx, shopkeeper.PageID(req.PageID))
	})
	if err != nil {
		return http.StatusNotFound, terror.Error(err, "Page not found")
	}
	return respondJSON(w, http.StatusOK, v.(*shopkeeper.Page))
}

// Create validates the page form, resolves its billboard title and uploads
// its nav image where those branches are active, then persists the
// document.
func (c *PageController) Create(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	err := r.ParseMultipartForm(maxUploadMemoryBytes)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	parts := r.MultipartForm.File["image"]

	form := &forms.PageForm{
		Href:         r.FormValue("href"),
		HeaderOption: r.FormValue("headerOption"),
		PageHeading:  r.FormValue("pageHeading"),
		Billboard:    r.FormValue("billboard"),
		NavOption:    r.FormValue("navlinkOption"),
		NavLink:      r.FormValue("navLink"),
		ImageCount:   len(parts),
	}
	draft, errs := form.Validate()
	if errs != nil {
		return respondValidationErrors(w, errs)
	}

	page := &shopkeeper.Page{Href: draft.Href}

	switch draft.HeaderKind {
	case shopkeeper.PageHeaderBillboard:
		billboardID, err := c.API.Store.BillboardIDByTitle(r.Context(), draft.BillboardTitle)
		if err != nil {
			return http.StatusBadRequest, terror.Error(err)
		}
		page.Header = shopkeeper.PageHeader{
			Kind:        shopkeeper.PageHeaderBillboard,
			BillboardID: billboardID,
		}
	default:
		page.Header = shopkeeper.PageHeader{
			Kind:    shopkeeper.PageHeaderHeading,
			Heading: draft.Heading,
		}
	}

	switch draft.NavKind {
	case shopkeeper.PageNavLinkImage:
		files, err := filesFromMultipart(parts[:1])
		if err != nil {
			return http.StatusBadRequest, terror.Error(err, "Error reading image")
		}
		images, err := c.API.Uploader.Upload(r.Context(), files)
		if err != nil {
			return http.StatusInternalServerError, terror.Error(err, "Error uploading image")
		}
		page.NavLink = shopkeeper.PageNavLink{
			Kind:  shopkeeper.PageNavLinkImage,
			Image: &images[0],
		}
	default:
		page.NavLink = shopkeeper.PageNavLink{
			Kind: shopkeeper.PageNavLinkText,
			Text: draft.NavText,
		}
	}

	err = c.API.Store.PageCreate(r.Context(), page)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error adding page")
	}
	c.API.Cache.InvalidateMutation(cache.MutationPageCreate)
	return respondJSON(w, http.StatusCreated, page)
}

// Update patches a page's href, heading and archive flag.
func (c *PageController) Update(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	form := &forms.UpdatePageForm{}
	err := json.NewDecoder(r.Body).Decode(form)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	if errs := form.Validate(); errs != nil {
		return respondValidationErrors(w, errs)
	}

	err = c.API.Store.PageUpdate(r.Context(), shopkeeper.PageID(form.PageID), form.Href, form.PageHeading, form.Archive)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error updating page")
	}
	c.API.Cache.InvalidateMutation(cache.MutationPageUpdate)
	return respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

// DeleteOne removes a single page. Both the page list and the page's own
// cache entry are invalidated.
func (c *PageController) DeleteOne(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no id provided")
	}
	err := c.API.Store.PageDelete(r.Context(), shopkeeper.PageID(id))
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error deleting page")
	}
	c.API.Cache.InvalidateMutation(cache.MutationPageDelete)
	return respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

// Delete removes the selected pages sequentially, returning per-item
// results.
func (c *PageController) Delete(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	selection := &store.Selection{}
	err := json.NewDecoder(r.Body).Decode(selection)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	ids := make([]shopkeeper.PageID, 0, len(selection.IDs))
	for _, id := range selection.IDs {
		ids = append(ids, shopkeeper.PageID(id))
	}

	results := c.API.Store.PagesDelete(r.Context(), ids)
	c.API.Cache.InvalidateMutation(cache.MutationPagesDelete)
	return respondJSON(w, http.StatusOK, struct {
		OK      bool                `json:"ok"`
		Results []store.BatchResult `json:"results"`
	}{
		OK:      store.BatchOK(results),
		Results: results,
	})
}
