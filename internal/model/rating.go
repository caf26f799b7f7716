package model

import (
	"fmt"
	"strings"
	"time"
)

// MinCommentLength is the shortest review comment accepted at submission time.
const MinCommentLength = 10

// DatasetRating is a single user review of a dataset. Ratings are created by
// user action and never mutated by the client afterwards.
type DatasetRating struct {
	CreatedAt time.Time
	ID        string
	UserID    string
	UserName  string
	Comment   string
	Rating    int
}

// Validate checks a rating before submission.
func (r *DatasetRating) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}

	if len(strings.TrimSpace(r.Comment)) < MinCommentLength {
		return fmt.Errorf("comment must be at least %d characters", MinCommentLength)
	}

	return nil
}
