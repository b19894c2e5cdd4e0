package common

// job statuses
const (
	JobDraft      = "draft"
	JobOpen       = "open"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// bid statuses
const (
	BidPending   = "pending"
	BidAccepted  = "accepted"
	BidRejected  = "rejected"
	BidWithdrawn = "withdrawn"
)

// account types supplied by the identity provider
const (
	Employer  = "employer"
	JobSeeker = "jobseeker"
	Admin     = "admin"
)

const (
	LocationOnsite = "onsite"
	LocationRemote = "remote"
)

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

const (
	PhysicalLight    = "light"
	PhysicalModerate = "moderate"
	PhysicalHeavy    = "heavy"
)

// analytics ranges
const (
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
	RangeYear    = "year"
)

// outbox event types
const (
	EventBidCreated      = "bid.created"
	EventBidAccepted     = "bid.accepted"
	EventBidRejected     = "bid.rejected"
	EventBidWithdrawn    = "bid.withdrawn"
	EventJobCompleted    = "job.completed"
	EventJobCancelled    = "job.cancelled"
	EventReviewSubmitted = "review.submitted"
)
