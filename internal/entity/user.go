package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Users are owned by the identity provider; this service only keeps the
// rating aggregates up to date.
type User struct {
	Id           uuid.UUID        `json:"id" db:"id"`
	Email        string           `json:"email" db:"email"`
	FirstName    string           `json:"firstName" db:"first_name"`
	LastName     string           `json:"lastName" db:"last_name"`
	AccountType  string           `json:"accountType" db:"account_type"`
	CompanyName  string           `json:"companyName" db:"company_name"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate" db:"hourly_rate"`
	Rating       decimal.Decimal  `json:"rating" db:"rating"`
	TotalReviews int              `json:"totalReviews" db:"total_reviews"`
	DateJoined   time.Time        `json:"dateJoined" db:"date_joined"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

// authenticated caller of every operation
type Principal struct {
	Id          uuid.UUID
	AccountType string
}
