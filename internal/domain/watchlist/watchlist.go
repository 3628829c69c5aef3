package watchlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	CreatedAt time.Time `json:"createdAt"`
}

// if the (user, movie) pair already exists
var ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
var ErrNotFound = errors.New("watchlist entry not found")

func NewEntry(userID, movieID string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now().UTC(),
	}
}
