package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
)

type Credentials struct {
	Email    string
	Password string
}

type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	UserID       kernel.UUID
}

type IdentityProvider interface {
	CreateAccount(ctx context.Context, credentials Credentials, role kernel.Role) (kernel.UUID, error)

	DeleteAccount(ctx context.Context, id kernel.UUID) error

	Authenticate(ctx context.Context, credentials Credentials) (Session, error)
}
