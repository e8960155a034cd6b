package catchup

import (
	"math"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// Time bar layouts. Small catch-ups get one dot per post, large ones are
// folded into time buckets.
const (
	BarDots = "2d"
	BarBins = "3d"

	// BarDotsMax is the largest catch-up still drawn one dot per post.
	BarDotsMax = 160
	// BarBinCount is the number of buckets of the binned layout.
	BarBinCount = 320
)

// BarLayout picks the time bar layout for a catch-up of count posts.
func BarLayout(count int) string {
	if count > BarDotsMax {
		return BarBins
	}
	return BarDots
}

// BinByTime spreads posts over n buckets by creation time. Posts from the
// future (relative to now) land in the last bucket. Each bucket keeps the input
// order of its posts.
func BinByTime(posts []domain.Post, n int, now time.Time) [][]domain.Post {
	if n <= 0 {
		return nil
	}
	bins := make([][]domain.Post, n)
	if len(posts) == 0 {
		return bins
	}

	minT, maxT := posts[0].CreatedAt, posts[0].CreatedAt
	for _, p := range posts[1:] {
		if p.CreatedAt.Before(minT) {
			minT = p.CreatedAt
		}
		if p.CreatedAt.After(maxT) {
			maxT = p.CreatedAt
		}
	}
	upper := maxT
	if now.Before(upper) {
		upper = now
	}
	span := upper.Sub(minT)

	for _, p := range posts {
		idx := n - 1
		if !p.CreatedAt.After(now) {
			idx = 0
			if span > 0 {
				normalized := float64(p.CreatedAt.Sub(minT)) / float64(span)
				idx = int(math.Floor(normalized * float64(n-1)))
			}
			idx = min(max(idx, 0), n-1)
		}
		bins[idx] = append(bins[idx], p)
	}
	return bins
}
