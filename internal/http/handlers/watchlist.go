package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/domain/watchlist"
	"github.com/abdmnsor/MOVIES-API/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type WatchlistStore interface {
	Add(ctx context.Context, entry watchlist.Entry) (watchlist.Entry, error)
	Remove(ctx context.Context, userID, movieID string) error
	ListByUser(ctx context.Context, userID string) ([]watchlist.Entry, error)
}

// All watchlist operations are scoped to the authenticated caller; there is no
// way to address another user's list.
type WatchlistHandler struct {
	repo WatchlistStore
}

func NewWatchlistHandler(repo WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{repo: repo}
}

func (h *WatchlistHandler) Add(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx)
		return
	}

	movieID, ok := uuidParam(ctx, "movieId")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	entry := watchlist.NewEntry(userID, movieID)

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	created, err := h.repo.Add(cctx, entry)

	if err != nil {
		switch {
		case errors.Is(err, watchlist.ErrAlreadyInWatchlist):
			RespondConflict(ctx, "already_in_watchlist", "This movie is already in your watchlist.")
		case errors.Is(err, movie.ErrNotFound):
			RespondNotFound(ctx, "Movie not found")
		default:
			RespondInternal(ctx, "Could not add movie to watchlist")
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *WatchlistHandler) Remove(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx)
		return
	}

	movieID, ok := uuidParam(ctx, "movieId")

	if !ok {
		RespondNotFound(ctx, "Movie is not in your watchlist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Remove(cctx, userID, movieID)

	if err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			RespondNotFound(ctx, "Movie is not in your watchlist")
			return
		}

		RespondInternal(ctx, "Could not remove movie from watchlist")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *WatchlistHandler) List(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	entries, err := h.repo.ListByUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list watchlist")
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
