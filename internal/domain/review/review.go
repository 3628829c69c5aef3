package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// The author is never part of the request payload; it is always the
// authenticated caller.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

func New(movieID, userID string, req CreateReviewRequest) Review {
	return Review{
		ID:        uuid.NewString(),
		MovieID:   movieID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
}
