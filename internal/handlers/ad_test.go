package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/adboard/adboard/internal/repo"
)

func adRouter(db *sql.DB) http.Handler {
	h := &AdHandler{Repo: repo.NewAdRepo(db)}
	r := chi.NewRouter()
	r.Get("/ads/{ad_id}", h.GetAd)
	return r
}

func TestAdHandler_GetAd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, ad_id, title, author, views, position`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ad_id", "title", "author", "views", "position"}).
			AddRow(7, 42, "bike for sale", "carol", 120, 3))

	req := httptest.NewRequest("GET", "/ads/42", nil)
	rr := httptest.NewRecorder()
	adRouter(db).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GetAd status: got %d, want 200", rr.Code)
	}
	var ad struct {
		ID       int    `json:"id"`
		AdID     int    `json:"ad_id"`
		Title    string `json:"title"`
		Author   string `json:"author"`
		Views    int    `json:"views"`
		Position int    `json:"position"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&ad); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ad.AdID != 42 {
		t.Errorf("ad_id: got %d, want the requested id 42", ad.AdID)
	}
	if ad.Title != "bike for sale" || ad.Author != "carol" || ad.Views != 120 || ad.Position != 3 {
		t.Errorf("unexpected ad: %+v", ad)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAdHandler_GetAd_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, ad_id, title, author, views, position`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/ads/999", nil)
	rr := httptest.NewRecorder()
	adRouter(db).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetAd status: got %d, want 404", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "ad not found" {
		t.Errorf("unexpected error: %q", out["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAdHandler_GetAd_InvalidID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	req := httptest.NewRequest("GET", "/ads/abc", nil)
	rr := httptest.NewRecorder()
	adRouter(db).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("GetAd status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
