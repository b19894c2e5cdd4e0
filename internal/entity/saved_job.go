package entity

import (
	"time"

	"github.com/google/uuid"
)

type SavedJob struct {
	Id      uuid.UUID `json:"id" db:"id"`
	UserId  uuid.UUID `json:"userId" db:"user_id"`
	JobId   uuid.UUID `json:"jobId" db:"job_id"`
	SavedAt time.Time `json:"savedAt" db:"saved_at"`
}

type SavedJobWithJob struct {
	SavedJob
	Job *JobListItem `json:"job" db:"-"`
}
