package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/domain/repository"
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// AddToken appends one token to the user's valid set. Single INSERT, so a
// client disconnect can never leave issuance half-done.
func (r *UserRepository) AddToken(userID, token, purpose string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_tokens (user_id, token, purpose)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, token) DO NOTHING
	`, userID, token, purpose)
	return err
}

// RemoveToken deletes one token row. Deleting an absent token is not an
// error; revocation is idempotent.
func (r *UserRepository) RemoveToken(userID, token string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2
	`, userID, token)
	return err
}

func (r *UserRepository) HasToken(userID, token, purpose string) (bool, error) {
	ctx := context.Background()
	var exists bool
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND token = $2 AND purpose = $3
		)
	`, userID, token, purpose)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) TokensByUser(userID string) ([]entity.UserToken, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, token, purpose, issued_at
		FROM user_tokens
		WHERE user_id = $1
		ORDER BY issued_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.UserToken
	for rows.Next() {
		var t entity.UserToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Purpose, &t.IssuedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
