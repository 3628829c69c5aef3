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
	"github.com/abdmnsor/MOVIES-API/internal/domain/review"
	"github.com/abdmnsor/MOVIES-API/internal/http/handlers"
	"github.com/abdmnsor/MOVIES-API/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeReviewsRepo struct {
	createFn func(ctx context.Context, rev review.Review) (review.Review, error)
	listFn   func(ctx context.Context, movieID string) ([]review.Review, error)
}

func (f *fakeReviewsRepo) Create(ctx context.Context, rev review.Review) (review.Review, error) {
	if f.createFn != nil {
		return f.createFn(ctx, rev)
	}
	return rev, nil
}

func (f *fakeReviewsRepo) ListByMovie(ctx context.Context, movieID string) ([]review.Review, error) {
	if f.listFn != nil {
		return f.listFn(ctx, movieID)
	}
	return []review.Review{}, nil
}

// asUser mounts a handler behind a middleware that injects the caller identity,
// the same shape the auth middleware produces.
func asUser(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		middlewares.SetIdentity(c, userID, isAdmin)
		c.Next()
	}
}

func TestCreateReviewHandler(t *testing.T) {
	movieID := uuid.NewString()
	callerID := uuid.NewString()

	tests := []struct {
		name           string
		url            string
		body           string
		identity       gin.HandlerFunc
		repoSetup      func(*fakeReviewsRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"rating":5,"comment":"Loved it"}`,
			identity:       asUser(callerID, false),
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "rating_out_of_range",
			body:           `{"rating":6}`,
			identity:       asUser(callerID, false),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "rating_missing",
			body:           `{"comment":"no stars"}`,
			identity:       asUser(callerID, false),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:     "movie_not_found",
			body:     `{"rating":4}`,
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeReviewsRepo) {
				f.createFn = func(ctx context.Context, rev review.Review) (review.Review, error) {
					return review.Review{}, movie.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:     "repo_error",
			body:     `{"rating":4}`,
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeReviewsRepo) {
				f.createFn = func(ctx context.Context, rev review.Review) (review.Review, error) {
					return review.Review{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "no_identity_on_context",
			body:           `{"rating":4}`,
			identity:       func(c *gin.Context) { c.Next() },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed_movie_id",
			url:      "/api/reviews/not-a-uuid",
			body:     `{"rating":4}`,
			identity: asUser(callerID, false),
			repoSetup: func(f *fakeReviewsRepo) {
				f.createFn = func(ctx context.Context, rev review.Review) (review.Review, error) {
					t.Fatalf("repo called for malformed movie id")
					return review.Review{}, nil
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodPost, "/api/reviews/:movieId", tt.identity, h.CreateReview)

			url := tt.url
			if url == "" {
				url = "/api/reviews/" + movieID
			}

			w := doJSON(r, http.MethodPost, url, tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestCreateReviewHandler_AuthorIsAlwaysTheCaller(t *testing.T) {
	movieID := uuid.NewString()
	callerID := uuid.NewString()
	otherID := uuid.NewString()

	fakeRepo := &fakeReviewsRepo{}

	var stored review.Review
	fakeRepo.createFn = func(ctx context.Context, rev review.Review) (review.Review, error) {
		stored = rev
		return rev, nil
	}

	h := handlers.NewReviewsHandler(fakeRepo)
	r := setupRouter(http.MethodPost, "/api/reviews/:movieId", asUser(callerID, false), h.CreateReview)

	// a userId in the payload must be ignored
	body := `{"rating":3,"comment":"ok","userId":"` + otherID + `"}`
	w := doJSON(r, http.MethodPost, "/api/reviews/"+movieID, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if stored.UserID != callerID {
		t.Fatalf("review author is %q, want the caller %q", stored.UserID, callerID)
	}

	if stored.MovieID != movieID {
		t.Fatalf("review movie is %q, want %q", stored.MovieID, movieID)
	}

	var resp review.Review
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.UserID != callerID {
		t.Fatalf("response author is %q, want %q", resp.UserID, callerID)
	}
}

func TestListReviewsByMovieHandler_MalformedMovieID(t *testing.T) {
	fakeRepo := &fakeReviewsRepo{
		listFn: func(ctx context.Context, movieID string) ([]review.Review, error) {
			t.Fatalf("repo called for malformed movie id")
			return nil, nil
		},
	}

	h := handlers.NewReviewsHandler(fakeRepo)
	r := setupRouter(http.MethodGet, "/api/reviews/:movieId", h.ListByMovie)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reviews/not-a-uuid", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusNotFound, w.Body.String())
	}
}

func TestListReviewsByMovieHandler(t *testing.T) {
	movieID := uuid.NewString()
	now := time.Now().UTC()

	tests := []struct {
		name           string
		repoSetup      func(*fakeReviewsRepo)
		wantStatusCode int
		wantCount      int
	}{
		{
			name: "success",
			repoSetup: func(f *fakeReviewsRepo) {
				f.listFn = func(ctx context.Context, id string) ([]review.Review, error) {
					return []review.Review{
						{ID: "r1", MovieID: id, UserID: "u1", Rating: 5, CreatedAt: now},
						{ID: "r2", MovieID: id, UserID: "u2", Rating: 3, CreatedAt: now},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name: "no_reviews_yet",
			repoSetup: func(f *fakeReviewsRepo) {
				f.listFn = func(ctx context.Context, id string) ([]review.Review, error) {
					return []review.Review{}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name: "movie_not_found",
			repoSetup: func(f *fakeReviewsRepo) {
				f.listFn = func(ctx context.Context, id string) ([]review.Review, error) {
					return nil, movie.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "repo_error",
			repoSetup: func(f *fakeReviewsRepo) {
				f.listFn = func(ctx context.Context, id string) ([]review.Review, error) {
					return nil, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodGet, "/api/reviews/:movieId", h.ListByMovie)

			req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+movieID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp []review.Review
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("expected a JSON array, got %s: %v", w.Body.String(), err)
				}
				if len(resp) != tt.wantCount {
					t.Fatalf("got %d reviews, want %d", len(resp), tt.wantCount)
				}
			}
		})
	}
}
