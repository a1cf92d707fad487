package http

import (
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Register godoc
//
//	@Summary	Register a requester or courier account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterRequest	true	"account"
//	@Success	201		{object}	PrincipalResponse
//	@Failure	400		{object}	Error
//	@Failure	502		{object}	Error
//	@Router		/auth/register [post]
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	role := kernel.RoleRequester
	if req.Role != "" {
		parsed, err := kernel.ParseRole(req.Role)
		if err != nil {
			return s.fail(c, err)
		}
		role = parsed
	}

	cmd, err := commands.NewRegisterAccountCommand(req.Email, req.Password, req.FullName, req.Phone, role)
	if err != nil {
		return s.fail(c, err)
	}

	p, err := s.h.RegisterAccount.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, PrincipalResponse{ID: p.ID().String(), Role: p.Role().String()})
}

// Login godoc
//
//	@Summary	Sign in and obtain an access token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	Error
//	@Router		/auth/login [post]
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewAuthenticateCommand(req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.Authenticate.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  res.Session.AccessToken,
		RefreshToken: res.Session.RefreshToken,
		ExpiresIn:    res.Session.ExpiresIn,
		Principal:    PrincipalResponse{ID: res.Principal.ID().String(), Role: res.Principal.Role().String()},
	})
}
