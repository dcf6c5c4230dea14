package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ictinvoice/services"
)

// SetToast shows a toast on the client through the HX-Trigger header,
// merging into any HX-Trigger JSON already set. A short-lived flash cookie
// carries the same toast across full-page responses such as downloads.
// Problems are logged to the request's logger (see RequestLogger).
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			requestLogger(e).Warn("toast: existing HX-Trigger is not valid JSON, overwriting", zap.Error(err))
		}
	}
	if trigger == nil {
		trigger = map[string]any{}
	}
	trigger["showToast"] = payload

	data, err := json.Marshal(trigger)
	if err != nil {
		requestLogger(e).Warn("toast: failed to marshal HX-Trigger JSON", zap.Error(err))
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// ValidationToast reports input errors as a warning toast with status 422.
// Errors that are not validation failures become a generic 500.
func ValidationToast(e *core.RequestEvent, err error) error {
	var ve *services.ValidationError
	if !errors.As(err, &ve) {
		var ie *services.IndexError
		if errors.As(err, &ie) {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	message := strings.Join(ve.Messages(), "; ")
	SetToast(e, "warning", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(http.StatusUnprocessableEntity, message)
}
