package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

func TestDayRepositoryGetRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("and"); got != "(date.gte.2026-03-01,date.lte.2026-03-07)" {
			t.Errorf("range filter = %q", got)
		}
		if got := q.Get("order"); got != "date.desc" {
			t.Errorf("order = %q", got)
		}
		// data.date is stale, the row key wins
		w.Write([]byte(`[{"user_id":"u1","date":"2026-03-02","data":{"date":"1999-01-01","meals":[],"steps":4000}}]`))
	}))
	defer srv.Close()

	repo := NewDayRepository(supabase.NewClient(srv.URL, "key"))
	days, err := repo.GetRange(context.Background(), "u1", "2026-03-01", "2026-03-07")
	if err != nil {
		t.Fatalf("GetRange() error = %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("len = %d, want 1", len(days))
	}
	if days[0].Date != "2026-03-02" || days[0].Steps != 4000 {
		t.Errorf("day = %+v", days[0])
	}
	if !days[0].HasData() {
		t.Error("expected day with empty meals to have data")
	}
}

func TestDayRepositoryGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewDayRepository(supabase.NewClient(srv.URL, "key"))
	_, err := repo.Get(context.Background(), "u1", "2026-03-02")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDayRepositoryUpsert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.URL.Query().Get("on_conflict"); got != "user_id,date" {
			t.Errorf("on_conflict = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var row dayRow
		if err := json.Unmarshal(body, &row); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if row.UserID != "u1" || row.Date != "2026-03-02" {
			t.Errorf("row = %+v", row)
		}
		out, _ := json.Marshal([]dayRow{row})
		w.Write(out)
	}))
	defer srv.Close()

	repo := NewDayRepository(supabase.NewClient(srv.URL, "key"))
	day := &models.DayRecord{Date: "2026-03-02", Meals: []models.Meal{}, Mood: 7}
	saved, err := repo.Upsert(context.Background(), "u1", day)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if saved.Mood != 7 {
		t.Errorf("Mood = %v, want 7", saved.Mood)
	}
}

func TestProductRepositoryListFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("or"); got != "(user_id.is.null,user_id.eq.u1)" {
			t.Errorf("or filter = %q", got)
		}
		w.Write([]byte(`[{"id":"rice","name":"Rice","complex":78}]`))
	}))
	defer srv.Close()

	repo := NewProductRepository(supabase.NewClient(srv.URL, "key"))
	products, err := repo.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 1 || products[0].Complex != 78 {
		t.Errorf("products = %+v", products)
	}
}
