package controller

import (
	"net/http"

	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type reviewRoutesHandler struct {
	reviewService service.Review
	validate      *validator.Validate
}

func newReviewRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *reviewRoutesHandler {
	h := &reviewRoutesHandler{reviewService: services.Review, validate: v}

	outer.POST("/jobs/:jobId/reviews", h.PostReview)
	outer.GET("/users/:userId/reviews", h.GetReceivedReviews)

	g := outer.Group("/reviews")
	g.GET("/pending", h.GetPendingReviews)
	g.GET("/stats", h.GetReviewStats)
	g.GET("/given", h.GetGivenReviews)

	return h
}

type postReviewInput struct {
	QualityRating         int        `json:"qualityRating" validate:"required,gte=1,lte=5"`
	CommunicationRating   int        `json:"communicationRating" validate:"required,gte=1,lte=5"`
	PunctualityRating     int        `json:"punctualityRating" validate:"required,gte=1,lte=5"`
	ProfessionalismRating int        `json:"professionalismRating" validate:"required,gte=1,lte=5"`
	Comment               string     `json:"comment" validate:"max=2000"`
	ReviewedUserId        *uuid.UUID `json:"reviewedUserId"`
}

// /jobs/:jobId/reviews
func (h *reviewRoutesHandler) PostReview(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input postReviewInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.ReviewInput{
		QualityRating:         input.QualityRating,
		CommunicationRating:   input.CommunicationRating,
		PunctualityRating:     input.PunctualityRating,
		ProfessionalismRating: input.ProfessionalismRating,
		Comment:               input.Comment,
		ReviewedUserId:        input.ReviewedUserId,
	}

	review, err := h.reviewService.SubmitReview(c.Request().Context(), principal(c), jobId, model)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, review)
}

// /reviews/pending
func (h *reviewRoutesHandler) GetPendingReviews(c echo.Context) error {
	pending, err := h.reviewService.PendingReviews(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pending)
}

type getReviewStatsInput struct {
	UserId string `query:"userId" validate:"omitempty,uuid"`
}

// /reviews/stats
func (h *reviewRoutesHandler) GetReviewStats(c echo.Context) error {
	var input getReviewStatsInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	userId := uuid.Nil
	if input.UserId != "" {
		userId = uuid.MustParse(input.UserId)
	}

	stats, err := h.reviewService.ReviewStats(c.Request().Context(), principal(c), userId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// /users/:userId/reviews
func (h *reviewRoutesHandler) GetReceivedReviews(c echo.Context) error {
	userId, err := uuidParam(c, "userId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	input := newPaginationQuery()
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	reviews, err := h.reviewService.ReceivedReviews(c.Request().Context(), principal(c), userId, input.input())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}

// /reviews/given
func (h *reviewRoutesHandler) GetGivenReviews(c echo.Context) error {
	input := newPaginationQuery()
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	reviews, err := h.reviewService.GivenReviews(c.Request().Context(), principal(c), input.input())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}
