// Package identity is a client of the hosted auth service (GoTrue admin API)
// that owns credentials and sessions.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

const (
	serviceName = "identity provider"
	authPath    = "/auth/v1"
)

// gotrue-go reports non-2xx responses only as formatted errors.
var statusPattern = regexp.MustCompile(`response status code (\d{3})`)

type Client struct {
	api gotrue.Client
}

var _ ports.IdentityProvider = (*Client)(nil)

// NewClient talks to the auth service at baseURL with the service role key,
// which is sent both as the api key and as the admin bearer token.
func NewClient(baseURL, serviceKey string) *Client {
	api := gotrue.New("", serviceKey).
		WithCustomGoTrueURL(strings.TrimRight(baseURL, "/") + authPath).
		WithToken(serviceKey)
	return &Client{api: api}
}

// CreateAccount registers credentials and returns the id the provider
// assigned. A rejected email or password is reported as a validation error.
func (c *Client) CreateAccount(ctx context.Context, credentials ports.Credentials, role kernel.Role) (kernel.UUID, error) {
	if err := ctx.Err(); err != nil {
		return kernel.UUID{}, err
	}

	password := credentials.Password
	resp, err := c.api.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        credentials.Email,
		Password:     &password,
		EmailConfirm: true,
		AppMetadata:  map[string]interface{}{"role": role.String()},
	})
	if err != nil {
		switch statusOf(err) {
		case http.StatusUnprocessableEntity, http.StatusConflict, http.StatusBadRequest:
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return kernel.UUID{}, errs.NewExternalServiceError(serviceName, err)
	}

	id, err := kernel.UUIDFromGoogle(resp.ID)
	if err != nil {
		return kernel.UUID{}, errs.NewExternalServiceError(serviceName, err)
	}
	return id, nil
}

// DeleteAccount is idempotent: an account that is already gone is not an
// error.
func (c *Client) DeleteAccount(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.api.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id.Google()})
	if err != nil && statusOf(err) != http.StatusNotFound {
		return errs.NewExternalServiceError(serviceName, err)
	}
	return nil
}

func (c *Client) Authenticate(ctx context.Context, credentials ports.Credentials) (ports.Session, error) {
	if err := ctx.Err(); err != nil {
		return ports.Session{}, err
	}

	token, err := c.api.SignInWithEmailPassword(credentials.Email, credentials.Password)
	if err != nil {
		status := statusOf(err)
		if errors.Is(err, types.ErrInvalidTokenRequest) || status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return ports.Session{}, fmt.Errorf("%w: invalid credentials", errs.ErrUnauthenticated)
		}
		return ports.Session{}, errs.NewExternalServiceError(serviceName, err)
	}

	userID, err := kernel.UUIDFromGoogle(token.User.ID)
	if err != nil {
		return ports.Session{}, errs.NewExternalServiceError(serviceName, err)
	}

	return ports.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		UserID:       userID,
	}, nil
}

// statusOf extracts the HTTP status from a gotrue-go error, or 0 when the
// request never got a response.
func statusOf(err error) int {
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	status, _ := strconv.Atoi(m[1])
	return status
}
