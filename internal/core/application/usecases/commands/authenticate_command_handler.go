package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/ports"
)

type AuthenticationResult struct {
	Session   ports.Session
	Principal kernel.Principal
}

// AuthenticateCommandHandler signs in through the identity provider and
// resolves the caller's role from the marketplace profile.
type AuthenticateCommandHandler struct {
	uowFactory AccountUoWFactory
	identity   ports.IdentityProvider
}

func NewAuthenticateCommandHandler(uowFactory AccountUoWFactory, identity ports.IdentityProvider) AuthenticateCommandHandler {
	return AuthenticateCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h AuthenticateCommandHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (AuthenticationResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthenticationResult{}, err
	}

	session, err := h.identity.Authenticate(ctx, ports.Credentials{
		Email:    cmd.Email(),
		Password: cmd.Password(),
	})
	if err != nil {
		return AuthenticationResult{}, err
	}

	profile, err := h.uowFactory.Create().AccountRepository().Get(ctx, session.UserID)
	if err != nil {
		return AuthenticationResult{}, err
	}

	principal, err := kernel.NewPrincipal(profile.ID(), profile.Role())
	if err != nil {
		return AuthenticationResult{}, err
	}

	return AuthenticationResult{Session: session, Principal: principal}, nil
}
