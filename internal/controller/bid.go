package controller

import (
	"context"
	"net/http"

	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/jobs/:jobId/bids", h.PostBid)
	outer.GET("/jobs/:jobId/bids", h.GetJobBids)
	outer.POST("/jobs/:jobId/bids/:bidId/accept", h.AcceptBid)
	outer.POST("/jobs/:jobId/bids/:bidId/reject", h.RejectBid)

	outer.GET("/bids/my", h.GetMyBids)
	outer.PATCH("/bids/:bidId", h.EditBid)
	outer.POST("/bids/:bidId/withdraw", h.WithdrawBid)

	return h
}

type postBidInput struct {
	Amount                  *decimal.Decimal `json:"amount" validate:"required"`
	Message                 string           `json:"message" validate:"max=2000"`
	EstimatedCompletionTime *int             `json:"estimatedCompletionTime" validate:"omitempty,gte=1"`
	IsTeamBid               bool             `json:"isTeamBid"`
}

// /jobs/:jobId/bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input postBidInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateBidInput{
		Amount:                  *input.Amount,
		Message:                 input.Message,
		EstimatedCompletionTime: input.EstimatedCompletionTime,
		IsTeamBid:               input.IsTeamBid,
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), principal(c), jobId, model)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, bid)
}

// /jobs/:jobId/bids
func (h *bidRoutesHandler) GetJobBids(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	bids, err := h.bidService.ListBidsForJob(c.Request().Context(), principal(c), jobId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}

// /jobs/:jobId/bids/:bidId/accept
func (h *bidRoutesHandler) AcceptBid(c echo.Context) error {
	return h.decide(c, h.bidService.AcceptBid)
}

// /jobs/:jobId/bids/:bidId/reject
func (h *bidRoutesHandler) RejectBid(c echo.Context) error {
	return h.decide(c, h.bidService.RejectBid)
}

type bidDecision func(ctx context.Context, p *entity.Principal, jobId, bidId uuid.UUID) (*entity.Bid, error)

func (h *bidRoutesHandler) decide(c echo.Context, fn bidDecision) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	bidId, err := uuidParam(c, "bidId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	bid, err := fn(c.Request().Context(), principal(c), jobId, bidId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type getMyBidsInput struct {
	Limit  int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset int32  `query:"offset" validate:"gte=0"`
	Status string `query:"status" validate:"omitempty,oneof=pending accepted rejected withdrawn"`
}

// /bids/my
func (h *bidRoutesHandler) GetMyBids(c echo.Context) error {
	input := getMyBidsInput{Limit: defaultLimit, Offset: defaultOffset}
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	bids, err := h.bidService.ListMyBids(c.Request().Context(), principal(c), input.Status, pageInput(input.Limit, input.Offset))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}

type editBidInput struct {
	Amount                  *decimal.Decimal `json:"amount"`
	Message                 *string          `json:"message" validate:"omitempty,max=2000"`
	EstimatedCompletionTime *int             `json:"estimatedCompletionTime" validate:"omitempty,gte=1"`
}

// /bids/:bidId
func (h *bidRoutesHandler) EditBid(c echo.Context) error {
	bidId, err := uuidParam(c, "bidId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input editBidInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.UpdateBidInput{
		Amount:                  input.Amount,
		Message:                 input.Message,
		EstimatedCompletionTime: input.EstimatedCompletionTime,
	}

	bid, err := h.bidService.UpdateBid(c.Request().Context(), principal(c), bidId, model)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

// /bids/:bidId/withdraw
func (h *bidRoutesHandler) WithdrawBid(c echo.Context) error {
	bidId, err := uuidParam(c, "bidId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	bid, err := h.bidService.WithdrawBid(c.Request().Context(), principal(c), bidId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}
