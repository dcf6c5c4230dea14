package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"ictinvoice/services"
	"ictinvoice/testhelpers"
)

func TestSetToast(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		message  string
		keepKey  string
	}{
		{"fresh header", "", "Item added", ""},
		{"merges existing events", `{"ledgerChanged":{"total":"39.50"}}`, "Item removed", "ledgerChanged"},
		{"overwrites invalid JSON", "notValidJSON", "Items cleared", ""},
		{"overwrites JSON null", "null", "Items cleared", ""},
		{"special characters", "", `Item "<Charger>" saved \ ok`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec
			if tt.existing != "" {
				rec.Header().Set("HX-Trigger", tt.existing)
			}

			SetToast(e, "success", tt.message)

			var parsed map[string]json.RawMessage
			if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
				t.Fatalf("HX-Trigger is not valid JSON: %v", err)
			}
			var toast map[string]string
			if err := json.Unmarshal(parsed["showToast"], &toast); err != nil {
				t.Fatalf("showToast is not valid JSON: %v", err)
			}
			if toast["message"] != tt.message || toast["type"] != "success" {
				t.Errorf("toast = %v", toast)
			}
			if tt.keepKey != "" {
				if _, ok := parsed[tt.keepKey]; !ok {
					t.Errorf("expected %q to survive the merge", tt.keepKey)
				}
			}

			cookies := rec.Result().Cookies()
			if len(cookies) != 1 || cookies[0].Name != "flash_toast" {
				t.Errorf("expected flash_toast cookie, got %v", cookies)
			}
		})
	}
}

func TestErrorToast(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, httptest.NewRequest(http.MethodPost, "/invoice/generate", nil), rec)

	if err := ErrorToast(e, http.StatusInternalServerError, "Failed to build PDF"); err != nil {
		t.Fatalf("ErrorToast() error = %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none")
	}
	if toastType(t, rec) != "error" {
		t.Errorf("toast type = %q, want error", toastType(t, rec))
	}
}

func TestValidationToast(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
		wantBody string
	}{
		{
			"validation",
			&services.ValidationError{Fields: map[string]string{"amount": "cost is required", "description": "item name is required"}},
			http.StatusUnprocessableEntity,
			"warning",
			"cost is required; item name is required",
		},
		{"index", &services.IndexError{Index: 4, Len: 1}, http.StatusNotFound, "error", "Item not found"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "error", "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, httptest.NewRequest(http.MethodPost, "/items", nil), rec)

			if err := ValidationToast(e, tt.err); err != nil {
				t.Fatalf("ValidationToast() error = %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := toastType(t, rec); got != tt.wantType {
				t.Errorf("toast type = %q, want %q", got, tt.wantType)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
