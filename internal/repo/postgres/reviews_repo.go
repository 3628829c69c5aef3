package postgres

import (
	"context"
	"errors"

	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/domain/review"
	"github.com/abdmnsor/MOVIES-API/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewReviewsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ReviewsRepo {
	return &ReviewsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *ReviewsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts the review after confirming the movie exists, in a single
// transaction so the reference can not go stale between check and insert.
func (repo *ReviewsRepo) Create(ctx context.Context, rev review.Review) (created review.Review, err error) {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool

	err = repo.observe("reviews.create.movie_check", func() error {
		return tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, rev.MovieID).Scan(&exists)
	})

	if err != nil {
		return
	}

	if !exists {
		err = movie.ErrNotFound
		return
	}

	err = repo.observe("reviews.create.insert", func() error {
		_, e := tx.Exec(ctx, `
		INSERT INTO reviews (id, movie_id, user_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, rev.ID, rev.MovieID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt)
		return e
	})

	if err != nil {
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	created = rev
	return
}

func (repo *ReviewsRepo) ListByMovie(ctx context.Context, movieID string) (revs []review.Review, err error) {
	var rows pgx.Rows

	err = repo.observe("reviews.list_by_movie", func() error {
		rows, err = repo.pool.Query(ctx,
			`
	SELECT id, movie_id, user_id, rating, comment, created_at
	FROM reviews
	WHERE movie_id = $1
	ORDER BY created_at ASC, id ASC
	`,
			movieID,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	revs = make([]review.Review, 0)

	for rows.Next() {
		var r review.Review

		e := rows.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt)

		if e != nil {
			err = e
			return
		}
		revs = append(revs, r)
	}

	if e := rows.Err(); e != nil {
		err = e
		return
	}

	// an empty list still needs the movie itself to exist
	if len(revs) == 0 {
		var dummy string

		err = repo.observe("reviews.list_by_movie.movie_check", func() error {
			return repo.pool.QueryRow(ctx, `SELECT id FROM movies WHERE id = $1`, movieID).Scan(&dummy)
		})

		if errors.Is(err, pgx.ErrNoRows) {
			err = movie.ErrNotFound
			return
		}

		if err != nil {
			return
		}
	}

	return
}
