package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
)

// MoviesRepo is an in-memory stand-in for the postgres repo, used in tests.
type MoviesRepo struct {
	mu    sync.RWMutex
	items map[string]movie.Movie
}

func NewMoviesRepo() *MoviesRepo {
	return &MoviesRepo{
		items: make(map[string]movie.Movie),
	}
}

func (r *MoviesRepo) Create(_ context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

func (r *MoviesRepo) List(_ context.Context) ([]movie.Movie, error) {
	r.mu.RLock()
	out := make([]movie.Movie, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *MoviesRepo) GetByID(_ context.Context, id string) (movie.Movie, error) {
	r.mu.RLock()
	m, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	return m, nil
}

func (r *MoviesRepo) Update(_ context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	m.Title = req.Title
	m.Description = req.Description
	m.Genre = req.Genre
	m.Year = req.Year

	r.items[id] = m

	return m, nil
}

func (r *MoviesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return movie.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
