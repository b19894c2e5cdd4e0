package controller

import (
	"net/http"

	"gigmarket/internal/service"

	"github.com/labstack/echo"
)

type diagnosticRoutesHandler struct {
	diagnosticService service.Diagnostics
}

func newDiagnosticRoutesHandler(outer *echo.Group, services *service.Services) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{services.Diagnostics}
	outer.GET("/ping", h.Ping)

	return h
}

type pingResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// /ping
func (h *diagnosticRoutesHandler) Ping(c echo.Context) error {
	if err := h.diagnosticService.Ping(c.Request().Context()); err != nil {
		if e := c.JSON(http.StatusServiceUnavailable, pingResponse{Status: "degraded", Database: "unreachable"}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, pingResponse{Status: "ok", Database: "ok"})
}
