package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/domain/review"
	"github.com/abdmnsor/MOVIES-API/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type ReviewsStore interface {
	Create(ctx context.Context, rev review.Review) (review.Review, error)
	ListByMovie(ctx context.Context, movieID string) ([]review.Review, error)
}

type ReviewsHandler struct {
	repo ReviewsStore
}

func NewReviewsHandler(repo ReviewsStore) *ReviewsHandler {
	return &ReviewsHandler{repo: repo}
}

func (h *ReviewsHandler) CreateReview(ctx *gin.Context) {
	movieID, ok := uuidParam(ctx, "movieId")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	// the author is always the authenticated caller
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx)
		return
	}

	var req review.CreateReviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	rev := review.New(movieID, userID, req)

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	created, err := h.repo.Create(cctx, rev)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}
		RespondInternal(ctx, "Could not create review")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ReviewsHandler) ListByMovie(ctx *gin.Context) {
	movieID, ok := uuidParam(ctx, "movieId")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	revs, err := h.repo.ListByMovie(cctx, movieID)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}

		RespondInternal(ctx, "Could not list reviews")
		return
	}

	ctx.JSON(http.StatusOK, revs)
}
