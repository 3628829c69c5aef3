package postgres

import (
	"context"
	"errors"

	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MoviesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMoviesRepo(pool *pgxpool.Pool, prom *observability.Prom) *MoviesRepo {
	return &MoviesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *MoviesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	err := r.observe("movies.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO movies (id, title, description, genre, year, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			m.ID, m.Title, m.Description, m.Genre, m.Year, m.CreatedAt, m.UpdatedAt)
		return e
	})

	if err != nil {
		return movie.Movie{}, err
	}

	return m, nil
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	var rows pgx.Rows

	err := r.observe("movies.list", func() error {
		var e error
		rows, e = r.pool.Query(ctx,
			`SELECT id, title, description, genre, year, created_at, updated_at
			 FROM movies
			 ORDER BY created_at ASC, id ASC`)
		return e
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]movie.Movie, 0)

	for rows.Next() {
		var m movie.Movie

		err = rows.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Year, &m.CreatedAt, &m.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	var m movie.Movie

	err := r.observe("movies.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, genre, year, created_at, updated_at
			 FROM movies WHERE id = $1`, id,
		).Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Year, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

func (r *MoviesRepo) Update(ctx context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	var m movie.Movie

	err := r.observe("movies.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE movies
				SET title = $2,
						description = $3,
						genre = $4,
						year = $5,
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, description, genre, year, created_at, updated_at`,
			id,
			req.Title,
			req.Description,
			req.Genre,
			req.Year,
		).Scan(
			&m.ID,
			&m.Title,
			&m.Description,
			&m.Genre,
			&m.Year,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}

	return m, nil
}

func (r *MoviesRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("movies.delete", func() error {
		tag, e := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if e != nil {
			return e
		}
		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return movie.ErrNotFound
	}

	return nil
}
