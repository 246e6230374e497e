package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/domain/repository"
)

// In-memory stand-ins for the postgres repositories. They keep the same
// contract: unique email, atomic single-token writes, owner-filtered todo
// lookups that collapse foreign rows into ErrNotFound.

type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User // by id
	byEmail map[string]string
	tokens  map[string][]entity.UserToken // by user id, issuance order
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:   make(map[string]*entity.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string][]entity.UserToken),
	}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *memUserRepo) AddToken(userID, token, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens[userID] {
		if t.Token == token {
			return nil
		}
	}
	r.tokens[userID] = append(r.tokens[userID], entity.UserToken{
		UserID: userID, Token: token, Purpose: purpose, IssuedAt: time.Now(),
	})
	return nil
}

func (r *memUserRepo) RemoveToken(userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.tokens[userID]
	for i, t := range list {
		if t.Token == token {
			r.tokens[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) HasToken(userID, token, purpose string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens[userID] {
		if t.Token == token && t.Purpose == purpose {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) TokensByUser(userID string) ([]entity.UserToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.UserToken, len(r.tokens[userID]))
	copy(out, r.tokens[userID])
	return out, nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memTodoRepo struct {
	mu    sync.Mutex
	todos map[string]*entity.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: make(map[string]*entity.Todo)}
}

func (r *memTodoRepo) Create(t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.todos[t.ID] = &cp
	return nil
}

func (r *memTodoRepo) ListByOwner(ownerID string) ([]*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Todo, 0)
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTodoRepo) GetForOwner(id, ownerID string) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTodoRepo) UpdateForOwner(t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.todos[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	r.todos[t.ID] = &cp
	return nil
}

func (r *memTodoRepo) DeleteForOwner(id, ownerID string) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(r.todos, id)
	cp := *t
	return &cp, nil
}

var _ repository.TodoRepository = (*memTodoRepo)(nil)
