package results

import (
	"sort"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/tui/common"
)

var barLevels = []rune("▁▂▃▄▅▆▇█")

// renderTimeBar draws when the posts of a catch-up were written. Cells holding
// posts of the current view are highlighted. Small catch-ups get one dot per
// post; larger ones are folded into time buckets.
func renderTimeBar(posts []domain.Post, matched map[string]bool, width int, now time.Time) string {
	if len(posts) == 0 || width <= 0 {
		return ""
	}
	sorted := append([]domain.Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	if catchup.BarLayout(len(sorted)) == catchup.BarDots && len(sorted) <= width {
		var b strings.Builder
		for _, p := range sorted {
			if matched[p.ID] {
				b.WriteString(common.BarMatchStyle.Render("•"))
			} else {
				b.WriteString(common.BarOtherStyle.Render("·"))
			}
		}
		return b.String()
	}

	bins := catchup.BinByTime(sorted, min(width, catchup.BarBinCount), now)
	peak := 0
	for _, bin := range bins {
		peak = max(peak, len(bin))
	}

	var b strings.Builder
	for _, bin := range bins {
		if len(bin) == 0 {
			b.WriteString(" ")
			continue
		}
		level := (len(bin)*len(barLevels) - 1) / peak
		cell := string(barLevels[min(level, len(barLevels)-1)])
		if anyMatched(bin, matched) {
			b.WriteString(common.BarMatchStyle.Render(cell))
		} else {
			b.WriteString(common.BarOtherStyle.Render(cell))
		}
	}
	return b.String()
}

func anyMatched(bin []domain.Post, matched map[string]bool) bool {
	for _, p := range bin {
		if matched[p.ID] {
			return true
		}
	}
	return false
}
