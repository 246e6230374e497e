package repository

import "github.com/oksasatya/taskvault/internal/domain/entity"

// TodoRepository defines the interface for todo persistence. Every method
// that touches an existing row takes the owner ID and filters by it in the
// store; an ownership mismatch surfaces as ErrNotFound.
type TodoRepository interface {
	Create(t *entity.Todo) error
	ListByOwner(ownerID string) ([]*entity.Todo, error)
	GetForOwner(id, ownerID string) (*entity.Todo, error)
	UpdateForOwner(t *entity.Todo) error
	DeleteForOwner(id, ownerID string) (*entity.Todo, error)
}
