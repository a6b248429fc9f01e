package user

import (
	"context"

	"besafe/internal/core/user"
)

// UserRepository is the outbound port for storing and retrieving users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	// FindAll returns users ordered by created_at descending.
	FindAll(ctx context.Context) ([]*user.User, error)
	// UpdateImage overwrites header_image and bytes_image for username.
	UpdateImage(ctx context.Context, username, headerImage, bytesImage string) (*user.User, error)
	Delete(ctx context.Context, username string) error
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// UserDTO never carries the password hash.
type UserDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	HeaderImage string `json:"headerImage"`
	BytesImage  string `json:"bytesImage"`
	CreatedAt   string `json:"createdAt"`
}
