package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskvault/internal/domain/entity"
	repo "github.com/oksasatya/taskvault/internal/domain/repository"
	"github.com/oksasatya/taskvault/pkg/helpers"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike; callers must not learn which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// UserService owns the account lifecycle: registration, credential checks,
// and the issue/revoke/resolve cycle of session tokens. Token validity has
// two layers: the signature checked by the JWT manager and membership in the
// stored per-user token set. Both must pass, which is what makes logout
// effective even though tokens are self-verifying.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.PasswordHasher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Hasher: hasher, Logger: logger}
}

// Register hashes the password, persists the account, and issues the first
// session token.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("password hash failed")
		}
		return nil, "", err
	}

	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.IssueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// FindByCredentials looks up the account by email and verifies the password.
func (s *UserService) FindByCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a fresh token. Earlier tokens stay valid;
// each login adds one entry to the stored set.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// IssueToken mints a signed token for the user and appends it to the stored
// valid set in one write.
func (s *UserService) IssueToken(ctx context.Context, u *entity.User) (string, error) {
	token, _, err := s.JWT.Generate(u.ID, helpers.TokenPurposeAuth)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", err
	}
	if err := s.Repo.AddToken(u.ID, token, helpers.TokenPurposeAuth); err != nil {
		return "", err
	}
	return token, nil
}

// RevokeToken removes one specific token from the user's valid set. Other
// tokens issued to the same user are untouched. Revoking a token that is
// already gone succeeds.
func (s *UserService) RevokeToken(ctx context.Context, u *entity.User, token string) error {
	return s.Repo.RemoveToken(u.ID, token)
}

// FindByToken resolves a raw token to its account. The token must parse
// under the process secret, carry the authentication purpose, and still be
// present in the account's stored set.
func (s *UserService) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != helpers.TokenPurposeAuth {
		return nil, ErrInvalidToken
	}

	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || u == nil {
		return nil, ErrInvalidToken
	}

	ok, err := s.Repo.HasToken(u.ID, token, helpers.TokenPurposeAuth)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTokenRevoked
	}
	return u, nil
}
