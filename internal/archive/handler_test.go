package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serveBundle(t *testing.T, store Store, patientID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	NewHandler(store).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+patientID+"/bundle", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_BundleReturnsArchivedPayload(t *testing.T) {
	store := newMemStore()
	raw := []byte(`{"resourceType":"Bundle","entry":[]}`)
	if err := store.Put(context.Background(), "pat-1", raw); err != nil {
		t.Fatal(err)
	}

	rec := serveBundle(t, store, "pat-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if got := rec.Body.String(); got != string(raw) {
		t.Errorf("payload must come back verbatim:\n got %s\nwant %s", got, raw)
	}
}

func TestHandler_BundleMissingPatient(t *testing.T) {
	rec := serveBundle(t, newMemStore(), "nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: %d", rec.Code)
	}
}
