package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/cache"
	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/gin-gonic/gin"
)

type MoviesStore interface {
	Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error)
	List(ctx context.Context) ([]movie.Movie, error)
	GetByID(ctx context.Context, id string) (movie.Movie, error)
	Update(ctx context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error)
	Delete(ctx context.Context, id string) error
}

const moviesListCacheKey = "movies:list"

type MoviesHandler struct {
	repo  MoviesStore
	cache cache.Store
}

func NewMoviesHandler(repo MoviesStore) *MoviesHandler {
	return &MoviesHandler{repo: repo}
}

func NewMoviesHandlerWithCache(repo MoviesStore, c cache.Store) *MoviesHandler {
	return &MoviesHandler{repo: repo, cache: c}
}

func (h *MoviesHandler) CreateMovie(ctx *gin.Context) {
	var req movie.CreateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	m, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create movie")
		return
	}

	h.invalidateListCache(cctx)

	ctx.JSON(http.StatusCreated, m)
}

func (h *MoviesHandler) ListMovies(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if raw, ok := h.cache.Get(cctx, moviesListCacheKey); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
	}

	movies, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list movies")
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(movies); err == nil {
			h.cache.Set(cctx, moviesListCacheKey, raw)
		}
	}

	ctx.JSON(http.StatusOK, movies)
}

func (h *MoviesHandler) GetMovieByID(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}
		RespondInternal(ctx, "Could not fetch movie")
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (h *MoviesHandler) UpdateMovie(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	var req movie.UpdateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}
		RespondInternal(ctx, "Could not update movie")
		return
	}

	h.invalidateListCache(cctx)

	ctx.JSON(http.StatusOK, m)
}

func (h *MoviesHandler) DeleteMovie(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")

	if !ok {
		RespondNotFound(ctx, "Movie not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Movie not found")
			return
		}
		RespondInternal(ctx, "Could not delete movie")
		return
	}

	h.invalidateListCache(cctx)

	ctx.Status(http.StatusNoContent)
}

func (h *MoviesHandler) invalidateListCache(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, moviesListCacheKey)
	}
}
