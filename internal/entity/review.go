package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Review struct {
	Id                    uuid.UUID       `json:"id" db:"id"`
	JobId                 uuid.UUID       `json:"jobId" db:"job_id"`
	ReviewerId            uuid.UUID       `json:"reviewerId" db:"reviewer_id"`
	ReviewedUserId        uuid.UUID       `json:"reviewedUserId" db:"reviewed_user_id"`
	QualityRating         int             `json:"qualityRating" db:"quality_rating"`
	CommunicationRating   int             `json:"communicationRating" db:"communication_rating"`
	PunctualityRating     int             `json:"punctualityRating" db:"punctuality_rating"`
	ProfessionalismRating int             `json:"professionalismRating" db:"professionalism_rating"`
	OverallRating         decimal.Decimal `json:"overallRating" db:"overall_rating"`
	Comment               string          `json:"comment" db:"comment"`
	CreatedAt             time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time       `json:"updatedAt" db:"updated_at"`
}

// service input model; there is no way to pass an overall rating in
type ReviewInput struct {
	QualityRating         int
	CommunicationRating   int
	PunctualityRating     int
	ProfessionalismRating int
	Comment               string
	ReviewedUserId        *uuid.UUID
}

// one completed job where the user worked with Counterpart
type Participation struct {
	JobId          uuid.UUID `db:"job_id"`
	JobTitle       string    `db:"job_title"`
	CompletionDate time.Time `db:"completion_date"`
	Counterpart    uuid.UUID `db:"counterpart_id"`
}

type ReviewedPair struct {
	JobId          uuid.UUID `db:"job_id"`
	ReviewedUserId uuid.UUID `db:"reviewed_user_id"`
}

type PendingReview struct {
	JobId          uuid.UUID `json:"jobId"`
	JobTitle       string    `json:"jobTitle"`
	CompletionDate time.Time `json:"completionDate"`
	ReviewedUserId uuid.UUID `json:"reviewedUserId"`
}

type ReviewStats struct {
	AverageRating         float64 `json:"averageRating"`
	TotalReviews          int     `json:"totalReviews"`
	QualityRating         float64 `json:"qualityRating"`
	CommunicationRating   float64 `json:"communicationRating"`
	PunctualityRating     float64 `json:"punctualityRating"`
	ProfessionalismRating float64 `json:"professionalismRating"`
	RatingBreakdown       [5]int  `json:"ratingBreakdown"`
}
