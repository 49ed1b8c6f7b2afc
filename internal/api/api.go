package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"business-console/internal/repository"
	"business-console/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var errUnauthorized = errors.New("unauthorized")

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var rejected *service.RejectedError
	switch {
	case errors.Is(err, repository.ErrStorageExhausted):
		return http.StatusInsufficientStorage
	case errors.Is(err, repository.ErrAnonymousTenant),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrUnknownField),
		errors.Is(err, repository.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrProfileExists):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidField),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrInvalidCartItem),
		errors.Is(err, service.ErrMissingTenant),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingContact):
		return http.StatusBadRequest
	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msgf("%s %s failed", c.Request().Method, c.Path())
		return c.JSON(status, map[string]string{"error": "internal error"})
	}
	return errorJSON(c, status, err)
}

// tenantFromContext reads the tenant id from the token placed by echojwt.
func tenantFromContext(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", errUnauthorized
	}
	claims, ok := token.Claims.(*service.JwtCustomClaims)
	if !ok || claims.Tenant == "" {
		return "", errUnauthorized
	}
	return claims.Tenant, nil
}
