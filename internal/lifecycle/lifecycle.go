// Package lifecycle holds the job and bid state machines. Services consult
// these tables before writing a new status; nothing here touches storage.
package lifecycle

import "gigmarket/internal/common"

type table map[string]map[string]struct{}

func (t table) can(from, to string) bool {
	allowed, ok := t[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

var jobTransitions = table{
	common.JobDraft:      {common.JobOpen: {}, common.JobCancelled: {}},
	common.JobOpen:       {common.JobInProgress: {}, common.JobCancelled: {}},
	common.JobInProgress: {common.JobCompleted: {}, common.JobCancelled: {}},
	common.JobCompleted:  {},
	common.JobCancelled:  {},
}

var bidTransitions = table{
	common.BidPending:   {common.BidAccepted: {}, common.BidRejected: {}, common.BidWithdrawn: {}},
	common.BidAccepted:  {},
	common.BidRejected:  {},
	common.BidWithdrawn: {},
}

// CanTransitionJob reports whether a job may move from one status to another.
// Staying in the same status is not a transition.
func CanTransitionJob(from, to string) bool {
	return jobTransitions.can(from, to)
}

func CanTransitionBid(from, to string) bool {
	return bidTransitions.can(from, to)
}

// IsJobTerminal is true for completed and cancelled jobs.
func IsJobTerminal(status string) bool {
	allowed, ok := jobTransitions[status]
	return ok && len(allowed) == 0
}

// AcceptsBids is true while new proposals and acceptances are allowed.
func AcceptsBids(status string) bool {
	return status == common.JobOpen || status == common.JobInProgress
}

// JobStatusAfterAccept is the job status once one more bid is accepted:
// an open job starts, an in-progress job keeps going.
func JobStatusAfterAccept(status string) string {
	if status == common.JobOpen {
		return common.JobInProgress
	}

	return status
}

func IsJobStatus(s string) bool {
	_, ok := jobTransitions[s]
	return ok
}

func IsBidStatus(s string) bool {
	_, ok := bidTransitions[s]
	return ok
}
