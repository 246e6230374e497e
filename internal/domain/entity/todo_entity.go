package entity

import (
	"time"
)

// Todo is an owned resource. OwnerID is set at creation and immutable; every
// read or mutation must be filtered by it.
type Todo struct {
	ID          string
	OwnerID     string
	Text        string
	Completed   bool
	CompletedAt *int64 // unix millis, nil while not completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
