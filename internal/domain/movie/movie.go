package movie

import (
	"errors"
	"time"
)

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Year        int       `json:"year,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("movie not found")

type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Genre       string `json:"genre" binding:"omitempty,max=80"`
	Year        int    `json:"year" binding:"omitempty,min=1888,max=2100"`
}

// a full update payload, the whole record is replaced
type UpdateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Genre       string `json:"genre" binding:"omitempty,max=80"`
	Year        int    `json:"year" binding:"omitempty,min=1888,max=2100"`
}
