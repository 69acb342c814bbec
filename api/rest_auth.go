package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shopkeeper"
	"shopkeeper/forms"
	"shopkeeper/helpers"

	"github.com/go-chi/chi/v5"
	leakybucket "github.com/kevinms/leakybucket-go"
	"github.com/ninja-software/terror/v2"
)

// loginBucket throttles credential guessing per remote address.
var loginBucket = leakybucket.NewCollector(0.5, 5, true)

// AuthController holds connection data for auth handlers
type AuthController struct {
	API *API
}

func AuthRouter(api *API) chi.Router {
	c := &AuthController{API: api}

	r := chi.NewRouter()
	r.Post("/login", WithError(c.Login))
	r.Post("/logout", WithError(c.Logout))
	r.Get("/me", WithError(WithMember(api, c.Me)))
	r.Post("/account", WithError(WithMember(api, c.AccountUpdate)))

	return r
}

// Login exchanges credentials for a backend session held in the session
// cookie.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) (int, error) {
	if loginBucket.Add(r.RemoteAddr, 1) == 0 {
		return http.StatusTooManyRequests, terror.Error(fmt.Errorf("too many login attempts"), "Too many login attempts, try again shortly.")
	}

	form := &forms.LoginForm{}
	err := json.NewDecoder(r.Body).Decode(form)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	if errs := form.Validate(); errs != nil {
		return respondValidationErrors(w, errs)
	}

	session, err := c.API.Auth.CreateEmailSession(r.Context(), form.Email, form.Password)
	if err != nil {
		return http.StatusUnauthorized, terror.Warn(shopkeeper.ErrInvalidCredentials, "Invalid Credentials!")
	}

	account, err := c.API.Auth.GetAccount(r.Context(), session.Secret)
	if err != nil {
		return http.StatusUnauthorized, terror.Warn(err, "Invalid Credentials!")
	}
	user := userFromAccount(account)
	if !user.IsAdmin() {
		return http.StatusForbidden, terror.Error(shopkeeper.ErrNotAdmin, Forbidden.String())
	}

	expire := session.Expire
	if expire.IsZero() {
		expire = time.Now().AddDate(0, 0, c.API.Config.SessionDays)
	}
	c.API.setSessionCookie(w, session.Secret, expire)
	return respondJSON(w, http.StatusOK, struct {
		User *shopkeeper.User `json:"user"`
	}{User: user})
}

// Logout revokes the backend session. The cookie is cleared even when the
// backend call fails, matching the panel's force-logout behaviour.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) (int, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		err = c.API.Auth.DeleteSession(r.Context(), cookie.Value)
		if err != nil {
			c.API.Log.Warn().Err(err).Msg("delete backend session")
		}
	}
	c.API.clearSessionCookie(w)
	w.Header().Set("X-Redirect-To", "/login")
	return respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

// Me returns the logged-in admin.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	return respondJSON(w, http.StatusOK, user)
}

// AccountUpdateRequest edits the logged-in admin's profile.
type AccountUpdateRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number"`
}

func (c *AuthController) AccountUpdate(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error) {
	req := &AccountUpdateRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Invalid request")
	}
	if req.Password != "" {
		err = helpers.IsValidPassword(req.Password)
		if err != nil {
			return http.StatusBadRequest, terror.Error(err)
		}
	}
	err = c.API.Store.UserUpdate(r.Context(), user.ID, req.Name, req.Password, req.MobileNumber)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "Error updating account")
	}
	return respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
