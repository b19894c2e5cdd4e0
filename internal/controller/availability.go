package controller

import (
	"net/http"

	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type availabilityRoutesHandler struct {
	availabilityService service.Availability
	validate            *validator.Validate
}

func newAvailabilityRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *availabilityRoutesHandler {
	h := &availabilityRoutesHandler{availabilityService: services.Availability, validate: v}

	g := outer.Group("/availability")
	g.GET("", h.GetSlots)
	g.POST("", h.PostSlot)
	g.PUT("/:slotId", h.PutSlot)
	g.DELETE("/:slotId", h.DeleteSlot)

	return h
}

type slotInput struct {
	DayOfWeek   *int   `json:"dayOfWeek" validate:"required,gte=0,lte=6"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (in *slotInput) model() *entity.WorkerAvailability {
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	return &entity.WorkerAvailability{
		DayOfWeek:   *in.DayOfWeek,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: available,
	}
}

// /availability
func (h *availabilityRoutesHandler) GetSlots(c echo.Context) error {
	slots, err := h.availabilityService.ListAvailability(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, slots)
}

// /availability
func (h *availabilityRoutesHandler) PostSlot(c echo.Context) error {
	var input slotInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	slot, err := h.availabilityService.CreateAvailability(c.Request().Context(), principal(c), input.model())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, slot)
}

// /availability/:slotId
func (h *availabilityRoutesHandler) PutSlot(c echo.Context) error {
	slotId, err := uuidParam(c, "slotId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input slotInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	slot, err := h.availabilityService.UpdateAvailability(c.Request().Context(), principal(c), slotId, input.model())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, slot)
}

// /availability/:slotId
func (h *availabilityRoutesHandler) DeleteSlot(c echo.Context) error {
	slotId, err := uuidParam(c, "slotId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.availabilityService.DeleteAvailability(c.Request().Context(), principal(c), slotId); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
