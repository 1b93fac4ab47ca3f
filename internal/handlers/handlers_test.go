package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/apierror"
	"github.com/JonnyWalker81/nutrisense/backend/internal/cache"
	"github.com/JonnyWalker81/nutrisense/backend/internal/middleware"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
	"github.com/JonnyWalker81/nutrisense/backend/internal/store"
)

var testNow = time.Date(2026, 3, 4, 19, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, auth bool) *gin.Engine {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	products := []models.Product{
		{ID: "base", Name: "Base", Complex: 25, GI: 50},
		{ID: "whey", Name: "Whey", Protein: 80},
	}
	if _, err := s.SeedProducts(t.Context(), products); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mem := cache.NewMemory()
	resolver := repository.NewProductResolver(s.Products(), mem, 0)
	p := pipeline.New(pipeline.DefaultConfig(), nil)
	days := service.NewDayService(s.Days())
	profiles := service.NewProfileService(s.Profiles())
	clock := func() time.Time { return testNow }

	h := Handlers{
		Advice:   NewAdviceHandler(service.NewAdviceService(days, profiles, resolver, p, mem, 0), clock),
		Analysis: NewAnalysisHandler(service.NewAnalysisService(days, profiles, resolver, p, mem, 0), clock),
		Days:     NewDayHandler(days, clock),
		Profile:  NewProfileHandler(profiles),
		Products: NewProductHandler(service.NewProductService(resolver)),
	}

	r := gin.New()
	v1 := r.Group("/api/v1")
	if auth {
		v1.Use(middleware.DevAuth("u1"))
	}
	h.Register(v1)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func meals(kcal float64) []models.Meal {
	return []models.Meal{
		{Time: "08:00", Items: []models.MealItem{{ProductID: "base", Grams: kcal / 2}}},
		{Time: "13:00", Items: []models.MealItem{{ProductID: "base", Grams: kcal / 2}}},
	}
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierror.ProblemDetails {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != apierror.ContentTypeProblemJSON {
		t.Errorf("Content-Type = %q", ct)
	}
	var p apierror.ProblemDetails
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v (%s)", err, w.Body.String())
	}
	return p
}

func TestPutAndGetDays(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodPut, "/api/v1/days/2026-03-04", models.DayRecord{Date: "ignored", Meals: meals(1800), Mood: 7})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", w.Code, w.Body.String())
	}
	var saved models.DayRecord
	json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.Date != "2026-03-04" {
		t.Errorf("date = %q, path should win", saved.Date)
	}

	do(r, http.MethodPut, "/api/v1/days/2026-03-03", models.DayRecord{Meals: meals(1900)})

	w = do(r, http.MethodGet, "/api/v1/days?days=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	var resp struct {
		Days  []models.DayRecord `json:"days"`
		Count int                `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 || resp.Days[0].Date != "2026-03-04" {
		t.Errorf("days = %+v", resp)
	}
}

func TestPutDayErrors(t *testing.T) {
	r := newTestRouter(t, true)

	tests := []struct {
		name     string
		path     string
		body     any
		wantType string
	}{
		{"bad path date", "/api/v1/days/March-4", models.DayRecord{}, apierror.TypeInvalidDate},
		{"malformed json", "/api/v1/days/2026-03-04", "{", apierror.TypeBadRequest},
		{"mood out of range", "/api/v1/days/2026-03-04", models.DayRecord{Mood: 12}, apierror.TypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if p := decodeProblem(t, w); p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
		})
	}
}

func TestDeleteMissingDay(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodDelete, "/api/v1/days/2026-03-04", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if p := decodeProblem(t, w); p.Type != apierror.TypeNotFound {
		t.Errorf("type = %q", p.Type)
	}
}

func TestGetAdvice(t *testing.T) {
	r := newTestRouter(t, true)
	do(r, http.MethodPut, "/api/v1/days/2026-03-04", models.DayRecord{Meals: meals(2320)})

	w := do(r, http.MethodGet, "/api/v1/advice?limit=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp models.AdviceResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Advices) == 0 || len(resp.Advices) > 3 {
		t.Fatalf("advices = %d, want 1..3", len(resp.Advices))
	}
	if resp.Advices[0].ID != "kcal_excess_critical" {
		t.Errorf("top advice = %s", resp.Advices[0].ID)
	}

	// an explicit moment before any meal changes the evaluated day
	w = do(r, http.MethodGet, "/api/v1/advice?at=2026-03-05T07:00:00Z", nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Date != "2026-03-05" || resp.Hour != 7 {
		t.Errorf("date/hour = %s/%d", resp.Date, resp.Hour)
	}
}

func TestGetAdviceBadQuery(t *testing.T) {
	r := newTestRouter(t, true)

	tests := []struct {
		query    string
		wantType string
	}{
		{"limit=0", apierror.TypeInvalidQuery},
		{"limit=abc", apierror.TypeInvalidQuery},
		{"limit=500", apierror.TypeInvalidQuery},
		{"at=yesterday", apierror.TypeInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/v1/advice?"+tt.query, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if p := decodeProblem(t, w); p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	r := newTestRouter(t, true)
	do(r, http.MethodPut, "/api/v1/days/2026-03-04", models.DayRecord{Meals: meals(1800)})
	do(r, http.MethodPut, "/api/v1/days/2026-02-01", models.DayRecord{Meals: meals(1800)})

	w := do(r, http.MethodGet, "/api/v1/analysis?days=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report models.AnalysisReport
	json.Unmarshal(w.Body.Bytes(), &report)
	if report.Confidence.ValidDays != 1 {
		t.Errorf("valid days = %d, want 1 inside the window", report.Confidence.ValidDays)
	}
}

func TestProfilePatch(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/v1/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}

	w = do(r, http.MethodPatch, "/api/v1/profile", `{"weight": 72, "water_goal_ml": 2600, "birthday": "1990-03-04"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPatch, "/api/v1/profile", `{"water_goal_ml": null}`)
	var p models.Profile
	json.Unmarshal(w.Body.Bytes(), &p)
	if p.Weight != 72 || p.WaterGoalMl != 0 || p.Birthday != "1990-03-04" {
		t.Errorf("profile = %+v", p)
	}

	w = do(r, http.MethodPatch, "/api/v1/profile", `{"gender": "other"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid gender status = %d, want 400", w.Code)
	}
}

func TestGetProducts(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var catalog models.ProductCatalog
	json.Unmarshal(w.Body.Bytes(), &catalog)
	if catalog.Source != string(repository.SourcePrimary) || catalog.Count != 2 {
		t.Errorf("catalog = %+v", catalog)
	}
}

func TestRequiresUser(t *testing.T) {
	r := newTestRouter(t, false)

	for _, path := range []string{"/api/v1/advice", "/api/v1/days", "/api/v1/profile", "/api/v1/products", "/api/v1/analysis"} {
		w := do(r, http.MethodGet, path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, w.Code)
		}
	}
}
