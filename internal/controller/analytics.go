package controller

import (
	"net/http"

	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type analyticsRoutesHandler struct {
	analyticsService service.Analytics
	dashboardService service.Dashboard
	validate         *validator.Validate
}

func newAnalyticsRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *analyticsRoutesHandler {
	h := &analyticsRoutesHandler{
		analyticsService: services.Analytics,
		dashboardService: services.Dashboard,
		validate:         v,
	}

	outer.GET("/analytics", h.GetAnalytics)
	outer.GET("/dashboard", h.GetDashboard)

	return h
}

// unknown ranges are rejected by the service
type getAnalyticsInput struct {
	Range string `query:"range" validate:"max=16"`
}

// /analytics
func (h *analyticsRoutesHandler) GetAnalytics(c echo.Context) error {
	var input getAnalyticsInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	report, err := h.analyticsService.GetAnalytics(c.Request().Context(), principal(c), input.Range)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

// /dashboard
func (h *analyticsRoutesHandler) GetDashboard(c echo.Context) error {
	stats, err := h.dashboardService.DashboardStats(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
