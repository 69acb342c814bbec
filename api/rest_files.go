package api

import (
	"net/http"

	"shopkeeper"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
)

// FileController holds connection data for handlers
type FileController struct {
	API *API
}

func FileRouter(api *API) chi.Router {
	c := &FileController{API: api}

	r := chi.NewRouter()
	r.Post("/upload", WithError(WithMember(api, c.Upload)))

	return r
}

// Upload stores the submitted image files and returns their preview
// references in submission order. The batch is all-or-nothing; one bad file
// fails the lot before anything is stored.
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	err := r.ParseMultipartForm(maxUploadMemoryBytes)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no files provided")
	}

	files, err := filesFromMultipart(parts)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Error reading files")
	}
	uploaded, err := c.API.Uploader.Upload(r.Context(), files)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error uploading files")
	}
	return respondJSON(w, http.StatusCreated, uploaded)
}
