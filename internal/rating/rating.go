// Package rating derives review scores and user rating aggregates.
package rating

import (
	"gigmarket/internal/entity"

	"github.com/shopspring/decimal"
)

const (
	MinScore = 1
	MaxScore = 5
)

func ValidScore(n int) bool {
	return n >= MinScore && n <= MaxScore
}

// Overall is the mean of the four sub-ratings rounded to one decimal place.
func Overall(quality, communication, punctuality, professionalism int) decimal.Decimal {
	sum := int64(quality + communication + punctuality + professionalism)
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(4)).Round(1)
}

// Recompute derives a user's rating and review count from every overall
// rating they have received. No reviews means a rating of zero.
func Recompute(received []decimal.Decimal) (decimal.Decimal, int) {
	if len(received) == 0 {
		return decimal.Zero, 0
	}

	return decimal.Avg(received[0], received[1:]...).Round(2), len(received)
}

// Stats summarizes received reviews. Breakdown slot i counts overall ratings
// in [i+1, i+2).
func Stats(reviews []entity.Review) *entity.ReviewStats {
	stats := &entity.ReviewStats{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return stats
	}

	var overall decimal.Decimal
	var quality, communication, punctuality, professionalism int
	for _, r := range reviews {
		overall = overall.Add(r.OverallRating)
		quality += r.QualityRating
		communication += r.CommunicationRating
		punctuality += r.PunctualityRating
		professionalism += r.ProfessionalismRating

		slot := int(r.OverallRating.IntPart()) - MinScore
		if slot >= 0 && slot < len(stats.RatingBreakdown) {
			stats.RatingBreakdown[slot]++
		}
	}

	n := decimal.NewFromInt(int64(len(reviews)))
	mean := func(sum decimal.Decimal) float64 {
		f, _ := sum.Div(n).Round(2).Float64()
		return f
	}

	stats.AverageRating = mean(overall)
	stats.QualityRating = mean(decimal.NewFromInt(int64(quality)))
	stats.CommunicationRating = mean(decimal.NewFromInt(int64(communication)))
	stats.PunctualityRating = mean(decimal.NewFromInt(int64(punctuality)))
	stats.ProfessionalismRating = mean(decimal.NewFromInt(int64(professionalism)))

	return stats
}
