package user

import (
	"time"

	"github.com/frahmantamala/jobcard-management/internal/auth"
)

// User is the profile view returned to clients.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      auth.Role `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RepositoryAPI is the data access surface for user profiles.
type RepositoryAPI interface {
	GetByID(userID int64) (*User, error)
}
