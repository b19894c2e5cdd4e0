package analytics

import (
	"errors"
	"time"

	"gigmarket/internal/common"
)

var ErrUnknownRange = errors.New("unknown analytics range")

var rangeDays = map[string]int{
	common.RangeWeek:    7,
	common.RangeMonth:   30,
	common.RangeQuarter: 90,
	common.RangeYear:    365,
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows returns the window ending at now and the equally long window
// right before it. An empty range means month.
func Windows(rng string, now time.Time) (current Window, previous Window, err error) {
	if rng == "" {
		rng = common.RangeMonth
	}

	days, ok := rangeDays[rng]
	if !ok {
		return Window{}, Window{}, ErrUnknownRange
	}

	span := time.Duration(days) * 24 * time.Hour
	current = Window{Start: now.Add(-span), End: now}
	previous = Window{Start: now.Add(-2 * span), End: current.Start}

	return current, previous, nil
}

// bucket boundaries for the jobs-over-time series, each offset from the
// window start so month steps do not drift
func buckets(rng string, w Window) []Window {
	step := func(i int) time.Time { return w.Start.AddDate(0, 0, 7*i) }
	switch rng {
	case common.RangeWeek:
		step = func(i int) time.Time { return w.Start.AddDate(0, 0, i) }
	case common.RangeYear:
		step = func(i int) time.Time { return w.Start.AddDate(0, i, 0) }
	}

	out := make([]Window, 0)
	for i := 0; ; i++ {
		start, end := step(i), step(i+1)
		if !start.Before(w.End) {
			break
		}
		if end.After(w.End) {
			end = w.End
		}
		out = append(out, Window{Start: start, End: end})
	}

	return out
}
