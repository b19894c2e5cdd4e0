package entity

import "github.com/google/uuid"

// Recurring weekly slot. Stored and served, never consulted by bidding.
type WorkerAvailability struct {
	Id          uuid.UUID `json:"id" db:"id"`
	WorkerId    uuid.UUID `json:"workerId" db:"worker_id"`
	DayOfWeek   int       `json:"dayOfWeek" db:"day_of_week"` // 0 = Monday
	StartTime   string    `json:"startTime" db:"start_time"`  // HH:MM:SS
	EndTime     string    `json:"endTime" db:"end_time"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
}
