package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	analyticsapp "innsight/internal/analytics/application"
	exportapp "innsight/internal/export/application"
	ingestapp "innsight/internal/ingest/application"
	sharedinfra "innsight/internal/shared/infrastructure"
	"innsight/internal/testhelpers"
)

func newRouter() http.Handler {
	loader := ingestapp.NewLoadService(sharedinfra.NewSlotCache(), nil, ingestapp.LoadOptions{})
	dashboard := analyticsapp.NewDashboardService(loader, nil, nil)
	h := NewHandlers(dashboard, exportapp.NewExportService(dashboard, nil), 1<<20)

	r := chi.NewRouter()
	r.Route("/api/v1", h.RegisterRoutes)
	return r
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Invalid JSON %q: %v", rec.Body.String(), err)
	}
}

func TestDashboardAwaitingUpload(t *testing.T) {
	rec := do(newRouter(), httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}
	var body errorResponse
	decode(t, rec, &body)
	if body.Kind != "awaiting_upload" {
		t.Errorf("Kind = %s", body.Kind)
	}
}

func TestUploadThenDashboard(t *testing.T) {
	router := newRouter()

	rec := do(router, uploadRequest(t, "reservations.csv", testhelpers.ScenarioCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("Upload returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Dashboard returned %d: %s", rec.Code, rec.Body.String())
	}

	var d analyticsapp.Dashboard
	decode(t, rec, &d)
	if d.KPIs.TotalRevenue != 350 || d.KPIs.AvgNights != 1.5 {
		t.Errorf("Unexpected KPIs %+v", d.KPIs)
	}
	if len(d.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", d.Warnings)
	}
}

func TestDashboardFilters(t *testing.T) {
	router := newRouter()
	do(router, uploadRequest(t, "reservations.csv", testhelpers.ScenarioCSV))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no params", "", 2},
		{"all sentinel", "?room_type=all&guests=all", 2},
		{"room type", "?room_type=Suite", 1},
		{"repeated room types", "?room_type=Suite&room_type=Standard", 2},
		{"guests list", "?guests=1,2", 2},
		{"guests", "?guests=1", 1},
		{"explicit empty", "?room_type=", 0},
		{"date range", "?start=2024-02-01&end=2024-02-28", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard"+tt.query, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("Status %d: %s", rec.Code, rec.Body.String())
			}
			var d analyticsapp.Dashboard
			decode(t, rec, &d)
			if d.KPIs.Reservations != tt.want {
				t.Errorf("Reservations = %d, want %d", d.KPIs.Reservations, tt.want)
			}
		})
	}
}

func TestRoomTypeWithComma(t *testing.T) {
	csv := "Arrival Date,Departure Date,Daily Rate,Room Type,Guests,Room\n" +
		"2024-01-01,2024-01-03,300,\"Suite, Ocean View\",2,501\n" +
		"2024-01-02,2024-01-04,100,Standard,1,101\n"
	router := newRouter()
	if rec := do(router, uploadRequest(t, "reservations.csv", csv)); rec.Code != http.StatusOK {
		t.Fatalf("Upload returned %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	var all analyticsapp.Dashboard
	decode(t, rec, &all)
	found := false
	for _, option := range all.Filters.RoomTypes {
		found = found || option == "Suite, Ocean View"
	}
	if !found {
		t.Fatalf("Room type options = %v", all.Filters.RoomTypes)
	}

	rec = do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?room_type="+url.QueryEscape("Suite, Ocean View"), nil))
	var d analyticsapp.Dashboard
	decode(t, rec, &d)
	if d.KPIs.Reservations != 1 || d.KPIs.TotalRevenue != 600 {
		t.Errorf("Expected the ocean view suite only, got %+v", d.KPIs)
	}
}

func TestDashboardBadQuery(t *testing.T) {
	router := newRouter()
	do(router, uploadRequest(t, "reservations.csv", testhelpers.ScenarioCSV))

	for _, query := range []string{"?start=2024-01-01", "?start=2024-02-01&end=2024-01-01", "?guests=two"} {
		rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard"+query, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestUploadMissingColumns(t *testing.T) {
	csv := "Arrival Date,Departure Date,Room Type,Guests,Room\n2024-01-01,2024-01-03,Suite,2,101\n"
	rec := do(newRouter(), uploadRequest(t, "bad.csv", csv))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
	var body errorResponse
	decode(t, rec, &body)
	if body.Kind != "missing_columns" || len(body.Missing) != 1 || body.Missing[0] != "Daily Rate" {
		t.Errorf("Unexpected body %+v", body)
	}
	if len(body.Available) == 0 {
		t.Error("Available columns should be listed")
	}
}

func TestUploadWithoutFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", strings.NewReader("nothing"))
	if rec := do(newRouter(), req); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestExportRoutes(t *testing.T) {
	router := newRouter()
	do(router, uploadRequest(t, "reservations.csv", testhelpers.ScenarioCSV))

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/api/v1/export/reservations.csv", http.StatusOK, "text/csv"},
		{"/api/v1/export/reservations.parquet", http.StatusOK, "application/octet-stream"},
		{"/api/v1/export/kpis.csv?room_type=Suite", http.StatusOK, "text/csv"},
		{"/api/v1/export/kpis.parquet", http.StatusNotFound, "application/json"},
		{"/api/v1/export/orders.csv", http.StatusNotFound, "application/json"},
	}
	for _, tt := range tests {
		rec := do(router, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s: status %d, want %d", tt.path, rec.Code, tt.status)
		}
		if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
			t.Errorf("%s: content type %s, want %s", tt.path, ct, tt.contentType)
		}
	}
}

func TestRefresh(t *testing.T) {
	router := newRouter()
	do(router, uploadRequest(t, "reservations.csv", testhelpers.ScenarioCSV))

	if rec := do(router, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)); rec.Code != http.StatusOK {
		t.Fatalf("Refresh returned %d", rec.Code)
	}

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	var d analyticsapp.Dashboard
	decode(t, rec, &d)
	if d.CacheHit {
		t.Error("Dashboard after refresh should reload the file")
	}
}
