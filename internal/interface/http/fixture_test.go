package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/domain/repository"
	handlers "github.com/oksasatya/taskvault/internal/interface/http"
	"github.com/oksasatya/taskvault/internal/interface/middleware"
	"github.com/oksasatya/taskvault/internal/router/modules"
	"github.com/oksasatya/taskvault/pkg/helpers"
	"github.com/oksasatya/taskvault/pkg/validation"
)

var initOnce sync.Once

// newAPIFixture wires the real routes over in-memory repositories. The rate
// limiters are no-ops without a redis client, so the auth and ownership
// behavior is what gets exercised.
func newAPIFixture(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	initOnce.Do(validation.Init)

	userRepo := newMemUserRepo()
	todoRepo := newMemTodoRepo()
	userSvc := application.NewUserService(
		userRepo,
		helpers.NewJWTManager("handler-secret", time.Hour),
		helpers.NewPasswordHasher(bcrypt.MinCost),
		nil,
	)
	todoSvc := application.NewTodoService(todoRepo, nil)

	r := gin.New()
	root := r.Group("")
	modules.NewUserModule(handlers.NewUserHandler(userSvc, nil), userSvc).Register(root)
	modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, nil), userSvc).Register(root)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.HeaderAuthToken, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func registerUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(middleware.HeaderAuthToken)
	require.NotEmpty(t, token)
	return token
}

// --- in-memory repositories ---

type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	byEmail map[string]string
	tokens  map[string][]entity.UserToken
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
	r.tokens[userID] = append(r.tokens[userID], entity.UserToken{
		UserID: userID, Token: token, Purpose: purpose, IssuedAt: time.Now(),
	})
	return nil
}

func (r *memUserRepo) RemoveToken(userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.tokens[userID]
	for i, tk := range list {
		if tk.Token == token {
			r.tokens[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) HasToken(userID, token, purpose string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tk := range r.tokens[userID] {
		if tk.Token == token && tk.Purpose == purpose {
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
	for _, td := range r.todos {
		if td.OwnerID == ownerID {
			cp := *td
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTodoRepo) GetForOwner(id, ownerID string) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	td, ok := r.todos[id]
	if !ok || td.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *td
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
	td, ok := r.todos[id]
	if !ok || td.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(r.todos, id)
	cp := *td
	return &cp, nil
}

var _ repository.TodoRepository = (*memTodoRepo)(nil)
