package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Job struct {
	Id          uuid.UUID `json:"id" db:"id"`
	EmployerId  uuid.UUID `json:"employerId" db:"employer_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CategoryId  *int64    `json:"categoryId" db:"category_id"`

	LocationType string           `json:"locationType" db:"location_type"`
	Address      string           `json:"address" db:"address"`
	City         string           `json:"city" db:"city"`
	State        string           `json:"state" db:"state"`
	ZipCode      string           `json:"zipCode" db:"zip_code"`
	Latitude     *decimal.Decimal `json:"latitude" db:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude" db:"longitude"`

	PostedDate        time.Time  `json:"postedDate" db:"posted_date"`
	StartDate         time.Time  `json:"startDate" db:"start_date"`
	StartTime         *string    `json:"startTime" db:"start_time"`
	EndDate           *time.Time `json:"endDate" db:"end_date"`
	EstimatedDuration *int       `json:"estimatedDuration" db:"estimated_duration"`
	IsFlexible        bool       `json:"isFlexible" db:"is_flexible"`
	Urgency           string     `json:"urgency" db:"urgency"`

	BudgetMin        decimal.Decimal  `json:"budgetMin" db:"budget_min"`
	BudgetMax        decimal.Decimal  `json:"budgetMax" db:"budget_max"`
	InstantHirePrice *decimal.Decimal `json:"instantHirePrice" db:"instant_hire_price"`

	NumberOfWorkers      int    `json:"numberOfWorkers" db:"number_of_workers"`
	ToolsProvided        bool   `json:"toolsProvided" db:"tools_provided"`
	ToolsRequired        string `json:"toolsRequired" db:"tools_required"`
	PhysicalRequirements string `json:"physicalRequirements" db:"physical_requirements"`

	// carried as data only, nothing matches on these
	AutoMatchEnabled     bool            `json:"autoMatchEnabled" db:"auto_match_enabled"`
	AutoMatchMinRating   decimal.Decimal `json:"autoMatchMinRating" db:"auto_match_min_rating"`
	AutoMatchMaxDistance int             `json:"autoMatchMaxDistance" db:"auto_match_max_distance"`

	Status         string     `json:"status" db:"status"`
	SelectedBidId  *uuid.UUID `json:"selectedBidId" db:"selected_bid_id"`
	CompletionDate *time.Time `json:"completionDate" db:"completion_date"`
	IsFeatured     bool       `json:"isFeatured" db:"is_featured"`
	ViewCount      int        `json:"viewCount" db:"view_count"`

	SkillIds []int64 `json:"skillIds" db:"-"`
}

// list model, annotated with bid aggregates
type JobListItem struct {
	Job
	BidsCount int              `json:"bidsCount" db:"bids_count"`
	LowestBid *decimal.Decimal `json:"lowestBid" db:"lowest_bid"`
}

// controller model for a single job fetch
type JobDetail struct {
	JobListItem
	UserHasBid bool `json:"userHasBid"`
	UserBid    *Bid `json:"userBid"`
	IsSaved    bool `json:"isSaved"`
}

// service + repo input model
type CreateJobInput struct {
	Title                string
	Description          string
	CategoryId           *int64
	SkillIds             []int64
	LocationType         string
	Address              string
	City                 string
	State                string
	ZipCode              string
	Latitude             *decimal.Decimal
	Longitude            *decimal.Decimal
	StartDate            time.Time
	StartTime            *string
	EndDate              *time.Time
	EstimatedDuration    *int
	IsFlexible           bool
	Urgency              string
	BudgetMin            decimal.Decimal
	BudgetMax            decimal.Decimal
	InstantHirePrice     *decimal.Decimal
	NumberOfWorkers      int
	ToolsProvided        bool
	ToolsRequired        string
	PhysicalRequirements string
	AutoMatchEnabled     bool
	AutoMatchMinRating   decimal.Decimal
	AutoMatchMaxDistance int
	Status               string // draft or open
}

// nil fields are left untouched
type UpdateJobInput struct {
	Title                *string
	Description          *string
	CategoryId           *int64
	City                 *string
	State                *string
	Address              *string
	StartDate            *time.Time
	Urgency              *string
	BudgetMin            *decimal.Decimal
	BudgetMax            *decimal.Decimal
	InstantHirePrice     *decimal.Decimal
	NumberOfWorkers      *int
	PhysicalRequirements *string
}

func (in *UpdateJobInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.CategoryId == nil && in.City == nil &&
		in.State == nil && in.Address == nil && in.StartDate == nil && in.Urgency == nil &&
		in.BudgetMin == nil && in.BudgetMax == nil && in.InstantHirePrice == nil &&
		in.NumberOfWorkers == nil && in.PhysicalRequirements == nil
}

type JobFilter struct {
	Category string
	City     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Urgency  string
	Physical string
	Search   string
	Ordering string
	Page     *PaginationInput
}
