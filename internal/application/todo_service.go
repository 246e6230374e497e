package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskvault/internal/domain/entity"
	repo "github.com/oksasatya/taskvault/internal/domain/repository"
)

// TodoService applies the ownership rule to every operation: the caller's
// user ID rides along on each call and the repository filters by it, so a
// foreign todo behaves exactly like a missing one.
type TodoService struct {
	Repo   repo.TodoRepository
	Logger *logrus.Logger
}

func NewTodoService(r repo.TodoRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: r, Logger: logger}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string, completed bool) (*entity.Todo, error) {
	t := &entity.Todo{OwnerID: ownerID, Text: text, Completed: completed}
	if completed {
		ms := nowMillis()
		t.CompletedAt = &ms
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return s.Repo.ListByOwner(ownerID)
}

func (s *TodoService) Get(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	return s.Repo.GetForOwner(id, ownerID)
}

type UpdateTodoInput struct {
	Text      *string
	Completed *bool
}

// Update edits text and completion. Marking a todo completed stamps
// CompletedAt with unix millis; anything else clears both fields.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, in UpdateTodoInput) (*entity.Todo, error) {
	t, err := s.Repo.GetForOwner(id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		t.Text = *in.Text
	}
	if in.Completed != nil && *in.Completed {
		t.Completed = true
		ms := nowMillis()
		t.CompletedAt = &ms
	} else {
		t.Completed = false
		t.CompletedAt = nil
	}

	if err := s.Repo.UpdateForOwner(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	return s.Repo.DeleteForOwner(id, ownerID)
}
