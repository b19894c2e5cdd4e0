package controller

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gigmarket/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(services *service.Services) *echo.Echo {
	e := echo.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetupRoutesHandlers(e, services, NewAuthenticator(testSecret), log)

	return e
}

func signToken(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func tokenFor(t *testing.T, id uuid.UUID, accountType string) string {
	return signToken(t, jwt.SigningMethodHS256, Claims{
		AccountType: accountType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
}

func doRequest(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func reason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Reason
}
