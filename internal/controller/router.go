package controller

import (
	"log/slog"

	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, auth *Authenticator, log *slog.Logger) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	handler.Use(recoverPanic(log), requestLogger(log))

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newCatalogRoutesHandler(api, services, validate)

	private := api.Group("", auth.RequireAuth)
	newJobRoutesHandler(private, services, validate)
	newBidRoutesHandler(private, services, validate)
	newReviewRoutesHandler(private, services, validate)
	newAnalyticsRoutesHandler(private, services, validate)
	newAvailabilityRoutesHandler(private, services, validate)
}
