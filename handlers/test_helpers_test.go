package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap/zaptest"

	"ictinvoice/services"
	"ictinvoice/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestDesk returns a desk writing into temporary directories, with the
// clock pinned to 5 March 2026.
func newTestDesk(t *testing.T, composer services.DraftComposer) *Desk {
	t.Helper()

	cfg := testhelpers.TestConfig(t)
	logger := zaptest.NewLogger(t)
	if composer == nil {
		composer = services.NewEMLComposer(cfg.Mail, logger)
	}

	d := NewDesk(cfg, services.NewRenderer(cfg.Letter, logger), composer, logger)
	d.now = func() time.Time { return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) }
	return d
}

func newFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func recipientForm() url.Values {
	return url.Values{
		"student_name": {"Jane Citizen"},
		"parent_name":  {"John Citizen"},
		"parent_email": {"parent@example.com"},
		"status":       {"Damaged"},
	}
}

// toastType returns the showToast type from the HX-Trigger header.
func toastType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	return parsed["showToast"]["type"]
}

func addItems(t *testing.T, d *Desk, items ...[2]string) {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		if _, err := d.ledger.Add(it[0], it[1]); err != nil {
			t.Fatalf("Add(%q, %q) error = %v", it[0], it[1], err)
		}
	}
}
