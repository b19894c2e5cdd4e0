package controller

import (
	"net/http"

	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type catalogRoutesHandler struct {
	catalogService service.Catalog
	validate       *validator.Validate
}

func newCatalogRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *catalogRoutesHandler {
	h := &catalogRoutesHandler{catalogService: services.Catalog, validate: v}

	outer.GET("/categories", h.GetCategories)
	outer.GET("/skills", h.GetSkills)

	return h
}

func (h *catalogRoutesHandler) GetCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

type getSkillsInput struct {
	Search string `query:"search" validate:"max=100"`
}

func (h *catalogRoutesHandler) GetSkills(c echo.Context) error {
	var input getSkillsInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	skills, err := h.catalogService.ListSkills(c.Request().Context(), input.Search)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, skills)
}
