package movie

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateMovieRequest) Movie {
	now := time.Now().UTC()

	return Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
