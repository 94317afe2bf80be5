package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/planner"
)

// newTestServer builds a server without persistence, backed by the
// embedded exercise catalog.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pl := planner.New(cat, log, nil)
	return New(nil, pl, cat, "test-key", log)
}

// TestGeneratePlanEndpoint verifies that a well-formed profile produces an
// accepted plan over HTTP.
func TestGeneratePlanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"activityLevel": "Intermediário",
		"frequency": 3,
		"availableTimeMinutes": 60,
		"imc": 23.0,
		"age": 30,
		"objective": "ganhar massa muscular",
		"trainingLocation": "academia"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(body))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Plan struct {
			WeeklySchedule []struct {
				Day       string `json:"day"`
				Exercises []any  `json:"exercises"`
			} `json:"weeklySchedule"`
		} `json:"plan"`
		Split string `json:"split"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Plan.WeeklySchedule) != 3 {
		t.Errorf("schedule days = %d, want 3", len(resp.Plan.WeeklySchedule))
	}
	if resp.Split != "Full Body" {
		t.Errorf("split = %q, want Full Body", resp.Split)
	}
	for _, d := range resp.Plan.WeeklySchedule {
		if len(d.Exercises) == 0 {
			t.Errorf("%s has no exercises", d.Day)
		}
	}
}

// TestGeneratePlanRequiresAPIKey verifies the generation endpoint is
// behind API key auth.
func TestGeneratePlanRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestGeneratePlanBadJSON verifies malformed bodies get 400.
func TestGeneratePlanBadJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(`{not json`))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestPreviewEndpoint verifies constraint resolution without generation.
func TestPreviewEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"activityLevel": "Avançado",
		"frequency": 6,
		"availableTimeMinutes": 90,
		"imc": 27.0,
		"objective": "emagrecer",
		"trainingLocation": "casa"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/preview", strings.NewReader(body))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Split   string `json:"split"`
		Deficit bool   `json:"deficit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Split != "PPL" {
		t.Errorf("split = %q, want PPL", resp.Split)
	}
	if !resp.Deficit {
		t.Error("expected deficit mode for a weight-loss objective")
	}
}

// TestCatalogEndpoint verifies the full catalog listing and the muscle
// filter.
func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var all []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?muscle=peito", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var chest []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &chest); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(chest) == 0 || len(chest) >= len(all) {
		t.Errorf("chest filter returned %d of %d templates", len(chest), len(all))
	}
}

// TestCatalogExerciseLookup verifies the single-exercise lookup by name.
func TestCatalogExerciseLookup(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?exercise=Supino+reto+com+barra", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var tmpl struct {
		Name          string
		PrimaryMuscle string
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tmpl); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if tmpl.Name != "Supino reto com barra" {
		t.Errorf("name = %q", tmpl.Name)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?exercise=Inexistente", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown exercise status = %d, want 404", rec.Code)
	}
}

// TestCatalogMusclesEndpoint verifies the muscle summary listing.
func TestCatalogMusclesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/muscles", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var muscles []struct {
		Name      string `json:"name"`
		Exercises int    `json:"exercises"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &muscles); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(muscles) != 10 {
		t.Errorf("muscle groups = %d, want 10", len(muscles))
	}
	for _, m := range muscles {
		if m.Exercises == 0 {
			t.Errorf("muscle %s has no exercises in the catalog", m.Name)
		}
	}
}

// TestListPlansWithoutDB verifies the list endpoint degrades to an empty
// list when persistence is disabled.
func TestListPlansWithoutDB(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

// TestListRejectionsWithoutDB verifies the rejections endpoint degrades to
// an empty list when persistence is disabled.
func TestListRejectionsWithoutDB(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rejections", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}
