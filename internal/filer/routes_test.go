package filer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/akhelifi/bibliosort/internal/drive"
)

func newTestRouter(fx *fixture) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, fx.svc)
	return r
}

func postClassify(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClassifyRouteStoreFailure(t *testing.T) {
	mem := drive.NewMemoryStore()
	fx := newFixture(t, failingStore{mem})
	router := newTestRouter(fx)
	path := writeDoc(t, "doc.txt", "cats and dogs")

	body, _ := json.Marshal(map[string]string{"path": path})
	rec := postClassify(t, router, string(body))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body = %s", rec.Code, rec.Body.String())
	}

	// The response carries the classification so the caller can retry the
	// filing without reclassifying.
	var resp struct {
		Error  string  `json:"error"`
		Result *Result `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("response has no result")
	}
	if resp.Result.Status != StatusFilingFailed {
		t.Errorf("result status = %q, want %q", resp.Result.Status, StatusFilingFailed)
	}
	if resp.Result.AutomaticLabel != "Animals" {
		t.Errorf("AutomaticLabel = %q, want Animals", resp.Result.AutomaticLabel)
	}

	if rows := readLedger(t, fx.ledgerPath); len(rows) != 1 {
		t.Errorf("ledger has %d rows, want 1", len(rows))
	}
}

func TestReportRouteStoreFailure(t *testing.T) {
	fx := newFixture(t, failingLookupStore{})
	router := newTestRouter(fx)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502, body = %s", rec.Code, rec.Body.String())
	}
}
