package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/domain/watchlist"
	"github.com/abdmnsor/MOVIES-API/internal/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeWatchlistRepo struct {
	addFn    func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error)
	removeFn func(ctx context.Context, userID, movieID string) error
	listFn   func(ctx context.Context, userID string) ([]watchlist.Entry, error)
}

func (f *fakeWatchlistRepo) Add(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
	if f.addFn != nil {
		return f.addFn(ctx, entry)
	}
	return entry, nil
}

func (f *fakeWatchlistRepo) Remove(ctx context.Context, userID, movieID string) error {
	if f.removeFn != nil {
		return f.removeFn(ctx, userID, movieID)
	}
	return nil
}

func (f *fakeWatchlistRepo) ListByUser(ctx context.Context, userID string) ([]watchlist.Entry, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return []watchlist.Entry{}, nil
}

func TestAddToWatchlistHandler(t *testing.T) {
	movieID := uuid.NewString()
	callerID := uuid.NewString()

	tests := []struct {
		name           string
		identity       gin.HandlerFunc
		repoSetup      func(*fakeWatchlistRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			identity:       asUser(callerID, false),
			wantStatusCode: http.StatusCreated,
		},
		{
			name:     "duplicate_entry",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.addFn = func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
					return watchlist.Entry{}, watchlist.ErrAlreadyInWatchlist
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name:     "movie_not_found",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.addFn = func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
					return watchlist.Entry{}, movie.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:     "repo_error",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.addFn = func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
					return watchlist.Entry{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "no_identity_on_context",
			identity:       func(c *gin.Context) { c.Next() },
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeWatchlistRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(fakeRepo)
			}

			h := handlers.NewWatchlistHandler(fakeRepo)
			r := setupRouter(http.MethodPost, "/api/watchlist/:movieId", tt.identity, h.Add)

			req := httptest.NewRequest(http.MethodPost, "/api/watchlist/"+movieID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestWatchlistHandler_MalformedMovieID(t *testing.T) {
	callerID := uuid.NewString()

	fakeRepo := &fakeWatchlistRepo{
		addFn: func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
			t.Fatalf("add called for malformed movie id")
			return watchlist.Entry{}, nil
		},
		removeFn: func(ctx context.Context, userID, movieID string) error {
			t.Fatalf("remove called for malformed movie id")
			return nil
		},
	}

	h := handlers.NewWatchlistHandler(fakeRepo)

	r := gin.New()
	r.POST("/api/watchlist/:movieId", asUser(callerID, false), h.Add)
	r.DELETE("/api/watchlist/:movieId", asUser(callerID, false), h.Remove)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/watchlist/not-a-uuid", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("add got status %d, want %d, body=%s", w.Code, http.StatusNotFound, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/watchlist/not-a-uuid", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("remove got status %d, want %d, body=%s", w.Code, http.StatusNotFound, w.Body.String())
	}
}

func TestAddToWatchlistHandler_EntryIsScopedToCaller(t *testing.T) {
	movieID := uuid.NewString()
	callerID := uuid.NewString()

	fakeRepo := &fakeWatchlistRepo{}

	var stored watchlist.Entry
	fakeRepo.addFn = func(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error) {
		stored = entry
		return entry, nil
	}

	h := handlers.NewWatchlistHandler(fakeRepo)
	r := setupRouter(http.MethodPost, "/api/watchlist/:movieId", asUser(callerID, false), h.Add)

	req := httptest.NewRequest(http.MethodPost, "/api/watchlist/"+movieID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if stored.UserID != callerID {
		t.Fatalf("entry owner is %q, want the caller %q", stored.UserID, callerID)
	}

	if stored.MovieID != movieID {
		t.Fatalf("entry movie is %q, want %q", stored.MovieID, movieID)
	}
}

func TestRemoveFromWatchlistHandler(t *testing.T) {
	movieID := uuid.NewString()
	callerID := uuid.NewString()

	tests := []struct {
		name           string
		identity       gin.HandlerFunc
		repoSetup      func(*fakeWatchlistRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			identity:       asUser(callerID, false),
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:     "not_in_watchlist",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.removeFn = func(ctx context.Context, userID, movieID string) error {
					return watchlist.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:     "repo_error",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.removeFn = func(ctx context.Context, userID, movieID string) error {
					return errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "no_identity_on_context",
			identity:       func(c *gin.Context) { c.Next() },
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeWatchlistRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(fakeRepo)
			}

			h := handlers.NewWatchlistHandler(fakeRepo)
			r := setupRouter(http.MethodDelete, "/api/watchlist/:movieId", tt.identity, h.Remove)

			req := httptest.NewRequest(http.MethodDelete, "/api/watchlist/"+movieID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestListWatchlistHandler(t *testing.T) {
	callerID := uuid.NewString()
	now := time.Now().UTC()

	tests := []struct {
		name           string
		identity       gin.HandlerFunc
		repoSetup      func(*fakeWatchlistRepo)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:     "success",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.listFn = func(ctx context.Context, userID string) ([]watchlist.Entry, error) {
					if userID != callerID {
						t.Fatalf("listing for %q, want the caller %q", userID, callerID)
					}
					return []watchlist.Entry{
						{ID: "w1", UserID: userID, MovieID: "m1", CreatedAt: now},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:     "empty_watchlist",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.listFn = func(ctx context.Context, userID string) ([]watchlist.Entry, error) {
					return []watchlist.Entry{}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:     "repo_error",
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeWatchlistRepo) {
				f.listFn = func(ctx context.Context, userID string) ([]watchlist.Entry, error) {
					return nil, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "no_identity_on_context",
			identity:       func(c *gin.Context) { c.Next() },
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeWatchlistRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(fakeRepo)
			}

			h := handlers.NewWatchlistHandler(fakeRepo)
			r := setupRouter(http.MethodGet, "/api/watchlist", tt.identity, h.List)

			req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp []watchlist.Entry
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("expected a JSON array, got %s: %v", w.Body.String(), err)
				}
				if len(resp) != tt.wantCount {
					t.Fatalf("got %d entries, want %d", len(resp), tt.wantCount)
				}
			}
		})
	}
}
