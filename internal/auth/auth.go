package auth

import (
	"context"
	"errors"
	"time"
)

// Role is a closed classification used for access decisions. Any value
// outside this set is rejected at verification time.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleClerk   Role = "CLERK"
	RoleViewer  Role = "VIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClerk, RoleViewer:
		return true
	}
	return false
}

func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Session is the verified claim set decoded from a request credential.
// It exists only for the duration of one request and is never persisted;
// it must not be constructed except from successful token verification.
type Session struct {
	UserID    int64
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// User is the authoritative account record. The signed claim can be stale
// (role changed, account deactivated), so it is re-read on every request.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// ServiceAPI performs authentication-related business logic.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (string, *User, error)
	VerifySession(tokenString string) (*Session, error)
	LoadUser(userID int64) (*User, error)
	ResolveUser(tokenString string) (*User, error)
}

// RepositoryAPI is the data access surface the auth service needs.
type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetUserByID(userID int64) (*User, error)
}

// TokenServiceAPI mints and verifies signed session tokens.
type TokenServiceAPI interface {
	GenerateToken(user *User) (token string, expiresAt time.Time, err error)
	VerifyToken(tokenString string) (*Session, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("missing credential")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrRoleNotPermitted   = errors.New("role not permitted")
)

type ctxKey string

// ContextUserKey holds the resolved *User placed by the auth middleware.
const ContextUserKey ctxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}
