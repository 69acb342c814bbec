package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckController holds connection data for handlers
type CheckController struct {
	API *API
}

func CheckRouter(api *API) chi.Router {
	c := &CheckController{API: api}
	r := chi.NewRouter()
	r.Get("/", c.Check)

	return r
}

func (c *CheckController) Check(w http.ResponseWriter, r *http.Request) {
	err := c.API.Backend.Health(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, err = w.Write([]byte(err.Error()))
		if err != nil {
			c.API.Log.Err(err).Msg("failed to send")
		}
		return
	}
	_, err = w.Write([]byte("ok"))
	if err != nil {
		c.API.Log.Err(err).Msg("failed to send")
	}
}
