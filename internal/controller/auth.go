package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const principalKey = "principal"

var errNoBearer = errors.New("authorization header missing or not a bearer token")

// Claims issued by the identity provider. Subject carries the user id.
type Claims struct {
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and turns them into principals.
type Authenticator struct {
	secret []byte
	opts   []jwt.ParserOption
}

func NewAuthenticator(secret string, opts ...jwt.ParserOption) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		opts:   append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}, opts...),
	}
}

func (a *Authenticator) Parse(token string) (*entity.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, a.opts...)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}

	switch claims.AccountType {
	case common.Employer, common.JobSeeker, common.Admin:
	default:
		return nil, fmt.Errorf("unknown account type %q", claims.AccountType)
	}

	return &entity.Principal{Id: id, AccountType: claims.AccountType}, nil
}

// RequireAuth rejects requests without a valid bearer token with 401.
func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := a.fromRequest(c.Request())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or missing access token"})
		}
		c.Set(principalKey, p)

		return next(c)
	}
}

func (a *Authenticator) fromRequest(r *http.Request) (*entity.Principal, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errNoBearer
	}

	return a.Parse(token)
}

// principal is nil outside RequireAuth; services answer that with Unauthenticated.
func principal(c echo.Context) *entity.Principal {
	p, _ := c.Get(principalKey).(*entity.Principal)
	return p
}
