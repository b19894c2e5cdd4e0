package analytics

import "gigmarket/internal/entity"

type bidBin struct {
	label string
	max   int // inclusive; -1 is unbounded
}

var bidBins = []bidBin{
	{"0-5", 5},
	{"6-10", 10},
	{"11-15", 15},
	{"16-20", 20},
	{"20+", -1},
}

// BidBinLabel names the histogram bin a job with n bids falls into.
func BidBinLabel(n int) string {
	return bidBins[bidBinIndex(n)].label
}

func bidBinIndex(n int) int {
	for i, b := range bidBins {
		if b.max < 0 || n <= b.max {
			return i
		}
	}

	return len(bidBins) - 1
}

// BidHistogram counts jobs published in w by number of bids received. Every bin
// is present, in fixed order, even when empty.
func BidHistogram(w Window, posted []entity.PostedJobFact) []BidBucket {
	out := make([]BidBucket, len(bidBins))
	for i, b := range bidBins {
		out[i].Range = b.label
	}

	for _, job := range posted {
		if publishedIn(w, job) {
			out[bidBinIndex(job.BidCount)].Count++
		}
	}

	return out
}
