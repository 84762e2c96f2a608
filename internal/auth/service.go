package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenServiceAPI
	bcryptCost int
	logger     *slog.Logger
}

// NewService creates a new auth service.
func NewService(repo RepositoryAPI, tokens TokenServiceAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate validates credentials and mints a session token for the
// resolved user.
func (s *Service) Authenticate(dto LoginDTO) (string, *User, error) {
	if err := dto.Validate(); err != nil {
		return "", nil, err
	}

	storedHash, userID, err := s.repo.GetPasswordForEmail(dto.Email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.LoadUser(userID)
	if err != nil {
		return "", nil, err
	}

	token, _, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to generate session token", "error", err, "user_id", user.ID)
		return "", nil, err
	}

	return token, user, nil
}

// VerifySession validates the token cryptographically and decodes the
// claim set. No store access happens here.
func (s *Service) VerifySession(tokenString string) (*Session, error) {
	return s.tokens.VerifyToken(tokenString)
}

// LoadUser fetches the current user record for a verified subject id.
// Token validity alone is necessary but not sufficient: a deleted account
// fails with ErrUserNotFound and a deactivated one with ErrUserInactive,
// so revocation takes effect before token expiry.
func (s *Service) LoadUser(userID int64) (*User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// ResolveUser runs verification and user loading for a raw credential.
func (s *Service) ResolveUser(tokenString string) (*User, error) {
	session, err := s.VerifySession(tokenString)
	if err != nil {
		return nil, err
	}
	return s.LoadUser(session.UserID)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
