package controller

import (
	"context"
	"net/http"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v}

	g := outer.Group("/jobs")
	g.GET("", h.GetJobs)
	g.POST("", h.PostJob)
	g.GET("/my", h.GetMyJobs)
	g.GET("/saved", h.GetSavedJobs)

	g.GET("/:jobId", h.GetJob)
	g.PATCH("/:jobId", h.EditJob)
	g.DELETE("/:jobId", h.DeleteJob)

	g.POST("/:jobId/publish", h.PublishJob)
	g.POST("/:jobId/cancel", h.CancelJob)
	g.POST("/:jobId/complete", h.CompleteJob)

	g.POST("/:jobId/save", h.SaveJob)
	g.DELETE("/:jobId/save", h.UnsaveJob)

	return h
}

type getJobsInput struct {
	Limit    int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset   int32  `query:"offset" validate:"gte=0"`
	Category string `query:"category" validate:"max=100"`
	City     string `query:"city" validate:"max=100"`
	MinPrice string `query:"min_price" validate:"omitempty,numeric"`
	MaxPrice string `query:"max_price" validate:"omitempty,numeric"`
	Urgency  string `query:"urgency" validate:"omitempty,oneof=low medium high urgent"`
	Physical string `query:"physical" validate:"omitempty,oneof=light moderate heavy"`
	Search   string `query:"search" validate:"max=200"`
	Ordering string `query:"ordering" validate:"omitempty,oneof=posted_date -posted_date start_date -start_date budget_max -budget_max urgency -urgency"`
}

func (in *getJobsInput) filter() *entity.JobFilter {
	return &entity.JobFilter{
		Category: in.Category,
		City:     in.City,
		MinPrice: decimalOrNil(in.MinPrice),
		MaxPrice: decimalOrNil(in.MaxPrice),
		Urgency:  in.Urgency,
		Physical: in.Physical,
		Search:   in.Search,
		Ordering: in.Ordering,
		Page:     pageInput(in.Limit, in.Offset),
	}
}

// s is already checked to be numeric
func decimalOrNil(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	return &d
}

// /jobs
func (h *jobRoutesHandler) GetJobs(c echo.Context) error {
	input := getJobsInput{Limit: defaultLimit, Offset: defaultOffset}
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	jobs, err := h.jobService.ListOpenJobs(c.Request().Context(), input.filter())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jobs)
}

type postJobInput struct {
	Title        string           `json:"title" validate:"required,max=200"`
	Description  string           `json:"description" validate:"required,max=5000"`
	CategoryId   *int64           `json:"categoryId" validate:"omitempty,gte=1"`
	SkillIds     []int64          `json:"skillIds" validate:"max=20,dive,gte=1"`
	LocationType string           `json:"locationType" validate:"omitempty,oneof=onsite remote"`
	Address      string           `json:"address" validate:"max=255"`
	City         string           `json:"city" validate:"required,max=100"`
	State        string           `json:"state" validate:"max=100"`
	ZipCode      string           `json:"zipCode" validate:"max=20"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`

	StartDate         time.Time  `json:"startDate" validate:"required"`
	StartTime         *string    `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndDate           *time.Time `json:"endDate"`
	EstimatedDuration *int       `json:"estimatedDuration" validate:"omitempty,gte=1"`
	IsFlexible        bool       `json:"isFlexible"`
	Urgency           string     `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`

	BudgetMin        *decimal.Decimal `json:"budgetMin" validate:"required"`
	BudgetMax        *decimal.Decimal `json:"budgetMax" validate:"required"`
	InstantHirePrice *decimal.Decimal `json:"instantHirePrice"`

	NumberOfWorkers      int    `json:"numberOfWorkers" validate:"gte=0,lte=100"`
	ToolsProvided        bool   `json:"toolsProvided"`
	ToolsRequired        string `json:"toolsRequired" validate:"max=1000"`
	PhysicalRequirements string `json:"physicalRequirements" validate:"omitempty,oneof=light moderate heavy"`

	AutoMatchEnabled     bool             `json:"autoMatchEnabled"`
	AutoMatchMinRating   *decimal.Decimal `json:"autoMatchMinRating"`
	AutoMatchMaxDistance int              `json:"autoMatchMaxDistance" validate:"gte=0"`

	Status string `json:"status" validate:"omitempty,oneof=draft open"`
}

func (in *postJobInput) model() *entity.CreateJobInput {
	model := &entity.CreateJobInput{
		Title:                in.Title,
		Description:          in.Description,
		CategoryId:           in.CategoryId,
		SkillIds:             in.SkillIds,
		LocationType:         in.LocationType,
		Address:              in.Address,
		City:                 in.City,
		State:                in.State,
		ZipCode:              in.ZipCode,
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
		StartDate:            in.StartDate,
		StartTime:            in.StartTime,
		EndDate:              in.EndDate,
		EstimatedDuration:    in.EstimatedDuration,
		IsFlexible:           in.IsFlexible,
		Urgency:              in.Urgency,
		BudgetMin:            *in.BudgetMin,
		BudgetMax:            *in.BudgetMax,
		InstantHirePrice:     in.InstantHirePrice,
		NumberOfWorkers:      in.NumberOfWorkers,
		ToolsProvided:        in.ToolsProvided,
		ToolsRequired:        in.ToolsRequired,
		PhysicalRequirements: in.PhysicalRequirements,
		AutoMatchEnabled:     in.AutoMatchEnabled,
		AutoMatchMaxDistance: in.AutoMatchMaxDistance,
		Status:               in.Status,
	}
	if model.LocationType == "" {
		model.LocationType = common.LocationOnsite
	}
	if model.Urgency == "" {
		model.Urgency = common.UrgencyMedium
	}
	if model.PhysicalRequirements == "" {
		model.PhysicalRequirements = common.PhysicalLight
	}
	if in.AutoMatchMinRating != nil {
		model.AutoMatchMinRating = *in.AutoMatchMinRating
	}

	return model
}

// /jobs
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	var input postJobInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), principal(c), input.model())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, job)
}

type getMyJobsInput struct {
	Status string `query:"status" validate:"omitempty,oneof=draft open in_progress completed cancelled"`
}

// /jobs/my
func (h *jobRoutesHandler) GetMyJobs(c echo.Context) error {
	var input getMyJobsInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	jobs, err := h.jobService.MyJobs(c.Request().Context(), principal(c), input.Status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jobs)
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.ViewJob(c.Request().Context(), principal(c), jobId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, job)
}

type editJobInput struct {
	Title                *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description          *string          `json:"description" validate:"omitempty,min=1,max=5000"`
	CategoryId           *int64           `json:"categoryId" validate:"omitempty,gte=1"`
	City                 *string          `json:"city" validate:"omitempty,min=1,max=100"`
	State                *string          `json:"state" validate:"omitempty,max=100"`
	Address              *string          `json:"address" validate:"omitempty,max=255"`
	StartDate            *time.Time       `json:"startDate"`
	Urgency              *string          `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`
	BudgetMin            *decimal.Decimal `json:"budgetMin"`
	BudgetMax            *decimal.Decimal `json:"budgetMax"`
	InstantHirePrice     *decimal.Decimal `json:"instantHirePrice"`
	NumberOfWorkers      *int             `json:"numberOfWorkers" validate:"omitempty,gte=1,lte=100"`
	PhysicalRequirements *string          `json:"physicalRequirements" validate:"omitempty,oneof=light moderate heavy"`
}

// /jobs/:jobId
func (h *jobRoutesHandler) EditJob(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var input editJobInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.UpdateJobInput{
		Title:                input.Title,
		Description:          input.Description,
		CategoryId:           input.CategoryId,
		City:                 input.City,
		State:                input.State,
		Address:              input.Address,
		StartDate:            input.StartDate,
		Urgency:              input.Urgency,
		BudgetMin:            input.BudgetMin,
		BudgetMax:            input.BudgetMax,
		InstantHirePrice:     input.InstantHirePrice,
		NumberOfWorkers:      input.NumberOfWorkers,
		PhysicalRequirements: input.PhysicalRequirements,
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), principal(c), jobId, model)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, job)
}

// /jobs/:jobId
func (h *jobRoutesHandler) DeleteJob(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), principal(c), jobId); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// /jobs/:jobId/publish
func (h *jobRoutesHandler) PublishJob(c echo.Context) error {
	return h.transition(c, h.jobService.PublishJob)
}

// /jobs/:jobId/cancel
func (h *jobRoutesHandler) CancelJob(c echo.Context) error {
	return h.transition(c, h.jobService.CancelJob)
}

// /jobs/:jobId/complete
func (h *jobRoutesHandler) CompleteJob(c echo.Context) error {
	return h.transition(c, h.jobService.CompleteJob)
}

func (h *jobRoutesHandler) transition(c echo.Context, fn func(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error)) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	job, err := fn(c.Request().Context(), principal(c), jobId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, job)
}

// /jobs/:jobId/save
func (h *jobRoutesHandler) SaveJob(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	saved, created, err := h.jobService.SaveJob(c.Request().Context(), principal(c), jobId)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return c.JSON(status, saved)
}

// /jobs/:jobId/save
func (h *jobRoutesHandler) UnsaveJob(c echo.Context) error {
	jobId, err := uuidParam(c, "jobId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.jobService.UnsaveJob(c.Request().Context(), principal(c), jobId); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// /jobs/saved
func (h *jobRoutesHandler) GetSavedJobs(c echo.Context) error {
	saved, err := h.jobService.ListSavedJobs(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, saved)
}
