package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shopkeeper/forms"
	"shopkeeper/shoplog"

	"github.com/ninja-software/terror/v2"
)

type ErrorMessage string

const (
	Unauthorised          ErrorMessage = "Unauthorised - Please log in or contact System Administrator"
	Forbidden             ErrorMessage = "Forbidden - You do not have permissions for this, please contact System Administrator"
	InternalErrorTryAgain ErrorMessage = "Internal Error - Please try again in a few minutes or Contact Support"
	InputError            ErrorMessage = "Input Error - Please try again"
)

func (errMsg ErrorMessage) String() string {
	return string(errMsg)
}

// ErrorObject is the JSON error envelope the admin panel turns into toasts.
type ErrorObject struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// WithError handles error responses.
func WithError(next func(w http.ResponseWriter, r *http.Request) (int, error)) http.HandlerFunc {
	fn := func(w http.ResponseWriter, r *http.Request) {
		code, err := next(w, r)
		if err == nil {
			return
		}
		errObj := &ErrorObject{
			Message:   err.Error(),
			ErrorCode: fmt.Sprintf("%d", code),
		}
		var bErr *terror.TError
		if errors.As(err, &bErr) {
			errObj.Message = bErr.Message

			switch bErr.Level {
			case terror.ErrLevelWarn:
				shoplog.L.Warn().Err(err).Str("path", r.URL.Path).Msg("rest error")
			default:
				shoplog.L.Err(err).Str("path", r.URL.Path).Msg("rest error")
			}

			// Generic messages unless a friendly message was set; the
			// original error detail is only ever logged.
			if bErr.Error() == bErr.Message {
				switch code {
				case http.StatusInternalServerError:
					errObj.Message = InternalErrorTryAgain.String()
				case http.StatusForbidden:
					errObj.Message = Forbidden.String()
				case http.StatusUnauthorized:
					errObj.Message = Unauthorised.String()
				case http.StatusBadRequest:
					errObj.Message = InputError.String()
				}
			}
		} else {
			shoplog.L.Err(err).Str("path", r.URL.Path).Msg("rest error")
		}

		jsonErr, err := json.Marshal(errObj)
		if err != nil {
			http.Error(w, `{"message":"JSON failed, please contact IT.","error_code":"00001"}`, code)
			return
		}
		http.Error(w, string(jsonErr), code)
	}
	return fn
}

// respondJSON writes a JSON payload with the given status.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "encode response")
	}
	return code, nil
}

// respondValidationErrors writes the per-field messages the form surfaces
// inline; submission is blocked, no backend call has happened.
func respondValidationErrors(w http.ResponseWriter, errs forms.ValidationErrors) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(struct {
		Message string                 `json:"message"`
		Errors  forms.ValidationErrors `json:"errors"`
	}{
		Message: "Validation failed",
		Errors:  errs,
	})
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "encode response")
	}
	return http.StatusBadRequest, nil
}
