// Package analytics turns raw employer facts into the reporting views:
// overview with trends, spend over time, spend by category, top workers,
// outcome of posted jobs and bid-count distribution.
package analytics

import (
	"sort"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topWorkersLimit = 5

type Overview struct {
	TotalJobs               int             `json:"totalJobs"`
	TotalJobsChange         int             `json:"totalJobsChange"`
	TotalSpent              decimal.Decimal `json:"totalSpent"`
	TotalSpentChange        int             `json:"totalSpentChange"`
	AvgJobCost              decimal.Decimal `json:"avgJobCost"`
	AvgJobCostChange        int             `json:"avgJobCostChange"`
	TotalWorkers            int             `json:"totalWorkers"`
	TotalWorkersChange      int             `json:"totalWorkersChange"`
	AvgCompletionTime       float64         `json:"avgCompletionTime"`
	AvgCompletionTimeChange int             `json:"avgCompletionTimeChange"`
	AvgRating               float64         `json:"avgRating"`
	AvgRatingChange         int             `json:"avgRatingChange"`
}

type Point struct {
	Period string          `json:"period"`
	Jobs   int             `json:"jobs"`
	Cost   decimal.Decimal `json:"cost"`
}

type CategoryCost struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

type WorkerEarnings struct {
	WorkerId  uuid.UUID       `json:"workerId"`
	Name      string          `json:"name"`
	Earnings  decimal.Decimal `json:"earnings"`
	Jobs      int             `json:"jobs"`
	AvgRating float64         `json:"avgRating"`
}

type CompletionRate struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Color string  `json:"color"`
}

type BidBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type Report struct {
	Range           string           `json:"range"`
	From            time.Time        `json:"from"`
	To              time.Time        `json:"to"`
	Overview        Overview         `json:"overview"`
	JobsOverTime    []Point          `json:"jobsOverTime"`
	CostsByCategory []CategoryCost   `json:"costsByCategory"`
	TopWorkers      []WorkerEarnings `json:"topWorkers"`
	CompletionRates []CompletionRate `json:"completionRates"`
	BidAnalytics    []BidBucket      `json:"bidAnalytics"`
}

// Build aggregates facts covering both windows into a report.
// Facts outside [previous.Start, current.End) are ignored.
func Build(rng string, now time.Time, facts *entity.AnalyticsFacts) (*Report, error) {
	if rng == "" {
		rng = common.RangeMonth
	}

	current, previous, err := Windows(rng, now)
	if err != nil {
		return nil, err
	}

	spend := spendByJob(facts.Bids)
	cur := summarize(current, facts, spend)
	prev := summarize(previous, facts, spend)

	return &Report{
		Range:           rng,
		From:            current.Start,
		To:              current.End,
		Overview:        overview(cur, prev),
		JobsOverTime:    jobsOverTime(rng, current, facts.Completed, spend),
		CostsByCategory: costsByCategory(current, facts.Completed, spend),
		TopWorkers:      topWorkers(current, facts),
		CompletionRates: completionRates(current, facts.Posted),
		BidAnalytics:    BidHistogram(current, facts.Posted),
	}, nil
}

type summary struct {
	jobs          int
	spent         decimal.Decimal
	avgCost       decimal.Decimal
	workers       int
	avgCompletion float64
	avgRating     float64
}

func spendByJob(bids []entity.AcceptedBidFact) map[uuid.UUID]decimal.Decimal {
	spend := make(map[uuid.UUID]decimal.Decimal)
	for _, b := range bids {
		spend[b.JobId] = spend[b.JobId].Add(b.Amount)
	}

	return spend
}

func summarize(w Window, facts *entity.AnalyticsFacts, spend map[uuid.UUID]decimal.Decimal) summary {
	var s summary
	inWindow := make(map[uuid.UUID]struct{})
	totalDays := 0
	for _, job := range facts.Completed {
		if !w.Contains(job.CompletionDate) {
			continue
		}
		inWindow[job.JobId] = struct{}{}
		s.jobs++
		s.spent = s.spent.Add(spend[job.JobId])
		totalDays += wholeDays(job.StartDate, job.CompletionDate)
	}

	workers := make(map[uuid.UUID]struct{})
	for _, b := range facts.Bids {
		if _, ok := inWindow[b.JobId]; ok {
			workers[b.WorkerId] = struct{}{}
		}
	}
	s.workers = len(workers)

	if s.jobs > 0 {
		n := decimal.NewFromInt(int64(s.jobs))
		s.avgCost = s.spent.Div(n).Round(2)
		s.avgCompletion = round2(decimal.NewFromInt(int64(totalDays)).Div(n))
	}

	ratingSum, ratings := decimal.Zero, 0
	for _, r := range facts.Ratings {
		if w.Contains(r.CreatedAt) {
			ratingSum = ratingSum.Add(r.OverallRating)
			ratings++
		}
	}
	if ratings > 0 {
		s.avgRating = round2(ratingSum.Div(decimal.NewFromInt(int64(ratings))))
	}

	return s
}

// wholeDays counts calendar days between the start date and the completion day.
func wholeDays(start, completed time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	c := completed.UTC()
	c = time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)

	return int(c.Sub(s).Hours() / 24)
}

func overview(cur, prev summary) Overview {
	return Overview{
		TotalJobs:               cur.jobs,
		TotalJobsChange:         changeInt(cur.jobs, prev.jobs),
		TotalSpent:              cur.spent,
		TotalSpentChange:        ChangePercent(cur.spent, prev.spent),
		AvgJobCost:              cur.avgCost,
		AvgJobCostChange:        ChangePercent(cur.avgCost, prev.avgCost),
		TotalWorkers:            cur.workers,
		TotalWorkersChange:      changeInt(cur.workers, prev.workers),
		AvgCompletionTime:       cur.avgCompletion,
		AvgCompletionTimeChange: changeFloat(cur.avgCompletion, prev.avgCompletion),
		AvgRating:               cur.avgRating,
		AvgRatingChange:         changeFloat(cur.avgRating, prev.avgRating),
	}
}

func jobsOverTime(rng string, w Window, completed []entity.CompletedJobFact, spend map[uuid.UUID]decimal.Decimal) []Point {
	layout := "2006-01-02"
	if rng == common.RangeYear {
		layout = "2006-01"
	}

	bs := buckets(rng, w)
	points := make([]Point, len(bs))
	for i, b := range bs {
		points[i] = Point{Period: b.Start.Format(layout), Cost: decimal.Zero}
	}

	for _, job := range completed {
		for i, b := range bs {
			if b.Contains(job.CompletionDate) {
				points[i].Jobs++
				points[i].Cost = points[i].Cost.Add(spend[job.JobId])
				break
			}
		}
	}

	return points
}

func costsByCategory(w Window, completed []entity.CompletedJobFact, spend map[uuid.UUID]decimal.Decimal) []CategoryCost {
	total := decimal.Zero
	byName := make(map[string]decimal.Decimal)
	for _, job := range completed {
		if !w.Contains(job.CompletionDate) {
			continue
		}
		total = total.Add(spend[job.JobId])
		if job.Category == nil {
			continue
		}
		byName[*job.Category] = byName[*job.Category].Add(spend[job.JobId])
	}

	out := make([]CategoryCost, 0, len(byName))
	for name, value := range byName {
		out = append(out, CategoryCost{Name: name, Value: value, Percentage: share(value, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Name < out[j].Name
	})

	return out
}

func topWorkers(w Window, facts *entity.AnalyticsFacts) []WorkerEarnings {
	inWindow := make(map[uuid.UUID]struct{})
	for _, job := range facts.Completed {
		if w.Contains(job.CompletionDate) {
			inWindow[job.JobId] = struct{}{}
		}
	}

	byWorker := make(map[uuid.UUID]*WorkerEarnings)
	for _, b := range facts.Bids {
		if _, ok := inWindow[b.JobId]; !ok {
			continue
		}
		we, ok := byWorker[b.WorkerId]
		if !ok {
			we = &WorkerEarnings{WorkerId: b.WorkerId, Name: b.WorkerName}
			byWorker[b.WorkerId] = we
		}
		we.Earnings = we.Earnings.Add(b.Amount)
		we.Jobs++
	}

	type acc struct {
		sum decimal.Decimal
		n   int64
	}
	ratings := make(map[uuid.UUID]*acc)
	for _, r := range facts.Ratings {
		if !w.Contains(r.CreatedAt) {
			continue
		}
		a, ok := ratings[r.ReviewedUserId]
		if !ok {
			a = &acc{}
			ratings[r.ReviewedUserId] = a
		}
		a.sum = a.sum.Add(r.OverallRating)
		a.n++
	}

	out := make([]WorkerEarnings, 0, len(byWorker))
	for id, we := range byWorker {
		if a, ok := ratings[id]; ok {
			we.AvgRating = round2(a.sum.Div(decimal.NewFromInt(a.n)))
		}
		out = append(out, *we)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Earnings.Equal(out[j].Earnings) {
			return out[i].Earnings.GreaterThan(out[j].Earnings)
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].WorkerId.String() < out[j].WorkerId.String()
	})

	if len(out) > topWorkersLimit {
		out = out[:topWorkersLimit]
	}

	return out
}

// Drafts carry a posted date but were never published.
func publishedIn(w Window, job entity.PostedJobFact) bool {
	return job.Status != common.JobDraft && w.Contains(job.PostedDate)
}

func completionRates(w Window, posted []entity.PostedJobFact) []CompletionRate {
	var total, completed, active, cancelled int
	for _, job := range posted {
		if !publishedIn(w, job) {
			continue
		}
		total++
		switch job.Status {
		case common.JobCompleted:
			completed++
		case common.JobOpen, common.JobInProgress:
			active++
		case common.JobCancelled:
			cancelled++
		}
	}

	rate := func(n int) float64 {
		return share(decimal.NewFromInt(int64(n)), decimal.NewFromInt(int64(total)))
	}

	return []CompletionRate{
		{Name: "Completed", Value: rate(completed), Count: completed, Color: "#4caf50"},
		{Name: "In Progress", Value: rate(active), Count: active, Color: "#2196f3"},
		{Name: "Cancelled", Value: rate(cancelled), Count: cancelled, Color: "#f44336"},
	}
}
