package postgres

import (
	"context"
	"errors"

	"github.com/abdmnsor/MOVIES-API/internal/domain/movie"
	"github.com/abdmnsor/MOVIES-API/internal/domain/watchlist"
	"github.com/abdmnsor/MOVIES-API/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WatchlistRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewWatchlistRepo(pool *pgxpool.Pool, prom *observability.Prom) *WatchlistRepo {
	return &WatchlistRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *WatchlistRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Add inserts the entry inside a transaction. The (user, movie) uniqueness is
// enforced by the watchlist_user_movie_uniq constraint, so two concurrent adds
// for the same pair resolve to one success and one ErrAlreadyInWatchlist.
func (repo *WatchlistRepo) Add(ctx context.Context, entry watchlist.Entry) (created watchlist.Entry, err error) {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool

	err = repo.observe("watchlist.add.movie_check", func() error {
		return tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, entry.MovieID).Scan(&exists)
	})

	if err != nil {
		return
	}

	if !exists {
		err = movie.ErrNotFound
		return
	}

	err = repo.observe("watchlist.add.insert", func() error {
		_, e := tx.Exec(ctx, `
		INSERT INTO watchlist (id, user_id, movie_id, created_at)
		VALUES ($1,$2,$3,$4)
	`, entry.ID, entry.UserID, entry.MovieID, entry.CreatedAt)
		return e
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "watchlist_user_movie_uniq" {
			err = watchlist.ErrAlreadyInWatchlist
			return
		}
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	created = entry
	return
}

func (repo *WatchlistRepo) Remove(ctx context.Context, userID, movieID string) (err error) {
	var tag pgconn.CommandTag

	err = repo.observe("watchlist.remove", func() error {
		var e error
		tag, e = repo.pool.Exec(ctx,
			`DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`,
			userID, movieID)
		return e
	})

	if err != nil {
		return
	}

	if tag.RowsAffected() == 0 {
		err = watchlist.ErrNotFound
		return
	}

	return
}

func (repo *WatchlistRepo) ListByUser(ctx context.Context, userID string) (entries []watchlist.Entry, err error) {
	var rows pgx.Rows

	err = repo.observe("watchlist.list_by_user", func() error {
		rows, err = repo.pool.Query(ctx,
			`
	SELECT id, user_id, movie_id, created_at
	FROM watchlist
	WHERE user_id = $1
	ORDER BY created_at ASC, id ASC
	`,
			userID,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	entries = make([]watchlist.Entry, 0)

	for rows.Next() {
		var e watchlist.Entry

		scanErr := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.CreatedAt)

		if scanErr != nil {
			err = scanErr
			return
		}
		entries = append(entries, e)
	}

	if e := rows.Err(); e != nil {
		err = e
		return
	}

	return
}
