package catchup

import (
	"time"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// FilterContextHome is the filter context of the home timeline.
const FilterContextHome = "home"

// ServerFilters evaluates the filter results the server attached to each
// status. Filters that expired or do not apply to the context are ignored.
// hide wins over blur, and blur wins over warn.
type ServerFilters struct {
	Now func() time.Time
}

// Evaluate implements app.FilterEvaluator.
func (f ServerFilters) Evaluate(post domain.Post, filterContext string) *domain.FilterVerdict {
	results := post.FilterResults
	if post.Reblog != nil && len(post.Reblog.FilterResults) > 0 {
		results = post.Reblog.FilterResults
	}
	if len(results) == 0 {
		return nil
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	var titles []string
	hide, blur := false, false
	for _, r := range results {
		if !contains(r.Context, filterContext) {
			continue
		}
		if r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
			continue
		}
		titles = append(titles, r.Title)
		switch domain.FilterAction(r.Action) {
		case domain.FilterHide:
			hide = true
		case domain.FilterBlur:
			blur = true
		}
	}
	if len(titles) == 0 {
		return nil
	}

	action := domain.FilterWarn
	switch {
	case hide:
		action = domain.FilterHide
	case blur:
		action = domain.FilterBlur
	}
	return &domain.FilterVerdict{Action: action, Titles: titles}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
