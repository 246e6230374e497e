package repository

import "github.com/oksasatya/taskvault/internal/domain/entity"

// UserRepository defines the interface for account persistence. Token add
// and remove are single-row writes so issuance and revocation stay atomic.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)

	AddToken(userID, token, purpose string) error
	RemoveToken(userID, token string) error
	HasToken(userID, token, purpose string) (bool, error)
	TokensByUser(userID string) ([]entity.UserToken, error)
}
