package service

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindInvalidState
	KindConflict
	KindLimitExceeded
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a failure the caller can act on. Anything else escaping a
// service is internal.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf reports the kind of err, KindInternal for errors not raised here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

var (
	ErrUnauthenticated = newError(KindUnauthenticated, "authentication required")

	ErrJobNotFound          = newError(KindNotFound, "job not found")
	ErrBidNotFound          = newError(KindNotFound, "bid not found")
	ErrUserNotFound         = newError(KindNotFound, "user not found")
	ErrSavedJobNotFound     = newError(KindNotFound, "job is not saved")
	ErrAvailabilityNotFound = newError(KindNotFound, "availability slot not found")

	ErrNotEmployer       = newError(KindForbidden, "only employers can do this")
	ErrNotJobOwner       = newError(KindForbidden, "only the job owner can do this")
	ErrNotBidOwner       = newError(KindForbidden, "only the bid author can do this")
	ErrOwnJobBid         = newError(KindForbidden, "can't bid on your own job")
	ErrNotJobParticipant = newError(KindForbidden, "only the employer and hired workers can review this job")
	ErrNoDashboard       = newError(KindForbidden, "dashboard is available to employers and job seekers only")

	ErrJobNotOpen          = newError(KindConflict, "job is not open for bidding")
	ErrBidAlreadyExists    = newError(KindConflict, "you have already bid on this job")
	ErrReviewAlreadyExists = newError(KindConflict, "you have already reviewed this user for this job")
	ErrAvailabilityExists  = newError(KindConflict, "availability slot already exists for this day and start time")

	ErrBidNotPending       = newError(KindInvalidState, "only pending bids can be changed")
	ErrBidAlreadyAccepted  = newError(KindInvalidState, "bid is already accepted")
	ErrJobNotAcceptingBids = newError(KindInvalidState, "job is not accepting bids")
	ErrJobNotInProgress    = newError(KindInvalidState, "job is not in progress")
	ErrJobNotCompleted     = newError(KindInvalidState, "reviews are allowed only for completed jobs")
	ErrJobNotDraft         = newError(KindInvalidState, "only draft jobs can be published")
	ErrJobClosed           = newError(KindInvalidState, "job is already completed or cancelled")
	ErrJobHasBids          = newError(KindInvalidState, "job with accepted bids can't be deleted")

	ErrBidLimitReached = newError(KindLimitExceeded, "all worker positions for this job are filled")

	ErrNoNewChanges        = newError(KindInvalidInput, "no new values")
	ErrNegativeAmount      = newError(KindInvalidInput, "amount must not be negative")
	ErrInvalidScore        = newError(KindInvalidInput, "ratings must be between 1 and 5")
	ErrReviewTargetNeeded  = newError(KindInvalidInput, "several workers were hired, pass reviewedUserId")
	ErrInvalidReviewTarget = newError(KindInvalidInput, "reviewed user was not hired for this job")
	ErrUnknownRange        = newError(KindInvalidInput, "range must be one of week, month, quarter, year")
	ErrInvalidJobStatus    = newError(KindInvalidInput, "new jobs are either draft or open")
	ErrInvalidWorkers      = newError(KindInvalidInput, "number of workers must be at least 1")
	ErrInvalidBudget       = newError(KindInvalidInput, "budget must not be negative")
	ErrInvalidReference    = newError(KindInvalidInput, "unknown category or skill")
	ErrInvalidSlot         = newError(KindInvalidInput, "day must be 0-6 and end time after start time")
)
