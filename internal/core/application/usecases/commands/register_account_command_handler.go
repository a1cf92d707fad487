package commands

import (
	"context"
	"errors"
	"log/slog"

	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/ports"
)

// RegisterAccountCommandHandler creates the identity record first and then
// the profile (plus the courier registry record for couriers) in one
// transaction. When that transaction fails the identity record is deleted
// again so no orphaned login remains.
type RegisterAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	identity   ports.IdentityProvider
	logger     *slog.Logger
}

func NewRegisterAccountCommandHandler(
	uowFactory AccountUoWFactory,
	identity ports.IdentityProvider,
	logger *slog.Logger,
) RegisterAccountCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RegisterAccountCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		logger:     logger.With("component", "account_registration"),
	}
}

func (h RegisterAccountCommandHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) (kernel.Principal, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Principal{}, err
	}

	id, err := h.identity.CreateAccount(ctx, ports.Credentials{
		Email:    cmd.Email(),
		Password: cmd.Password(),
	}, cmd.Role())
	if err != nil {
		return kernel.Principal{}, err
	}

	if err = h.storeProfile(ctx, id, cmd); err != nil {
		return kernel.Principal{}, h.compensate(ctx, id, err)
	}

	return kernel.NewPrincipal(id, cmd.Role())
}

func (h RegisterAccountCommandHandler) storeProfile(ctx context.Context, id kernel.UUID, cmd RegisterAccountCommand) error {
	at := now()
	profile, err := account.NewProfile(id, cmd.Email(), cmd.FullName(), cmd.Phone(), cmd.Role(), at)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AccountRepository().Add(ctx, profile); err != nil {
		return err
	}

	if profile.IsCourier() {
		c, err := courier.NewCourier(id, at)
		if err != nil {
			return err
		}
		if err = uow.CourierRepository().Add(ctx, c); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h RegisterAccountCommandHandler) compensate(ctx context.Context, id kernel.UUID, cause error) error {
	h.logger.WarnContext(ctx, "profile write failed, deleting identity account",
		"user_id", id.String(),
		"error", cause,
	)

	if err := h.identity.DeleteAccount(context.WithoutCancel(ctx), id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete orphaned identity account",
			"user_id", id.String(),
			"error", err,
		)
		return errors.Join(cause, err)
	}
	return cause
}
