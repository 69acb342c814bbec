package api

import (
	"context"
	"net/http"
	"time"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/ninja-software/terror/v2"
)

// SessionCookieName holds the opaque backend session token. HTTP-only,
// secure, same-site strict; presence gates every admin route.
const SessionCookieName = "session"

// AuthBackend is the slice of the backend client the session layer needs.
type AuthBackend interface {
	CreateEmailSession(ctx context.Context, email string, password string) (*docstore.Session, error)
	GetAccount(ctx context.Context, session string) (*docstore.Account, error)
	DeleteSession(ctx context.Context, session string) error
}

func (api *API) setSessionCookie(w http.ResponseWriter, secret string, expire time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    secret,
		Path:     "/",
		Expires:  expire,
		HttpOnly: true,
		Secure:   api.Config.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (api *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   api.Config.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func userFromAccount(account *docstore.Account) *shopkeeper.User {
	return &shopkeeper.User{
		ID:           shopkeeper.UserID(account.ID),
		Email:        account.Email,
		Name:         account.Name,
		MobileNumber: account.Prefs.MobileNumber,
		Role:         account.Prefs.Role,
		Labels:       account.Labels,
	}
}

// MemberFromRequest resolves the session cookie to an admin user. The
// session token travels with the user so handlers can act on the backend as
// the logged-in principal; no auth state is held between requests.
func (api *API) MemberFromRequest(r *http.Request) (*shopkeeper.User, string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, "", terror.Warn(shopkeeper.ErrSessionInvalid, "Please log in")
	}
	account, err := api.Auth.GetAccount(r.Context(), cookie.Value)
	if err != nil {
		return nil, "", terror.Warn(err, "Please log in")
	}
	user := userFromAccount(account)
	if !user.IsAdmin() {
		return nil, "", terror.Error(shopkeeper.ErrNotAdmin, Forbidden.String())
	}
	return user, cookie.Value, nil
}

// WithMember checks the session cookie for an authenticated admin. On
// failure the cookie is cleared and the response carries the login route so
// the panel can redirect instead of toasting.
func WithMember(api *API, next func(w http.ResponseWriter, r *http.Request, user *shopkeeper.User) (int, error)) func(w http.ResponseWriter, r *http.Request) (int, error) {
	fn := func(w http.ResponseWriter, r *http.Request) (int, error) {
		user, _, err := api.MemberFromRequest(r)
		if err != nil {
			api.clearSessionCookie(w)
			w.Header().Set("X-Redirect-To", "/login")
			return http.StatusUnauthorized, terror.Warn(err, "Please log in")
		}
		return next(w, r, user)
	}
	return fn
}
