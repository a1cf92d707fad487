package http

import (
	"fmt"
	"net/http"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// TokenClaims are the claims the identity provider puts into access tokens.
// The marketplace role travels in app_metadata.
type TokenClaims struct {
	jwt.StandardClaims
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

// Authenticator turns HS256 bearer tokens into principals.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) Authenticator {
	return Authenticator{secret: []byte(secret)}
}

func (a Authenticator) Principal(token string) (kernel.Principal, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return kernel.Principal{}, err
	}
	if !parsed.Valid {
		return kernel.Principal{}, fmt.Errorf("token is not valid")
	}

	id, err := kernel.ParseUUID("sub", claims.Subject)
	if err != nil {
		return kernel.Principal{}, err
	}
	role, err := kernel.ParseRole(claims.AppMetadata.Role)
	if err != nil {
		return kernel.Principal{}, err
	}
	return kernel.NewPrincipal(id, role)
}

// Sign issues a token for p. Used by tests and local tooling.
func (a Authenticator) Sign(p kernel.Principal, claims jwt.StandardClaims) (string, error) {
	claims.Subject = p.ID().String()
	tc := TokenClaims{StandardClaims: claims}
	tc.AppMetadata.Role = p.Role().String()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(a.secret)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's principal in the echo context.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return unauthorized(c, "missing bearer token")
			}
			p, err := a.Principal(token)
			if err != nil {
				return unauthorized(c, "invalid token")
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}

func principalFrom(c echo.Context) kernel.Principal {
	p, _ := c.Get(principalKey).(kernel.Principal)
	return p
}
