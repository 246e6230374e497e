package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/domain/repository"
)

// TodoRepository scopes every lookup and mutation by owner_id in SQL. A row
// that exists under another owner scans as zero rows, identical to a row
// that does not exist at all.
type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(t *entity.Todo) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (owner_id, text, completed, completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.OwnerID, t.Text, t.Completed, t.CompletedAt)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) ListByOwner(ownerID string) ([]*entity.Todo, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, text, completed, completed_at, created_at, updated_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Todo, 0)
	for rows.Next() {
		t := &entity.Todo{}
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TodoRepository) GetForOwner(id, ownerID string) (*entity.Todo, error) {
	ctx := context.Background()
	t := &entity.Todo{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, text, completed, completed_at, created_at, updated_at
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TodoRepository) UpdateForOwner(t *entity.Todo) error {
	ctx := context.Background()
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET text = $1, completed = $2, completed_at = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`, t.Text, t.Completed, t.CompletedAt, t.UpdatedAt, t.ID, t.OwnerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TodoRepository) DeleteForOwner(id, ownerID string) (*entity.Todo, error) {
	ctx := context.Background()
	t := &entity.Todo{}

	row := r.pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, text, completed, completed_at, created_at, updated_at
	`, id, ownerID)

	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
