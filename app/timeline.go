package app

import (
	"context"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

//go:generate mockgen -destination=mocks/mock_timeline.go -package=mocks github.com/CrestNiraj12/terminalcatchup/app FeedSource,FollowedTagResolver

// FeedSource yields successive pages of a timeline, newest first.
type FeedSource interface {
	// NextPage returns the next page. An empty page means the feed is exhausted.
	NextPage(ctx context.Context) ([]domain.Post, error)
}

// TimelineService opens paginated timelines.
type TimelineService interface {
	// HomeTimeline returns a fresh pager over the viewer's home timeline.
	HomeTimeline(limit int) FeedSource
}

// FilterEvaluator applies the viewer's filter rules to a post.
type FilterEvaluator interface {
	// Evaluate returns nil when no rule applies in the given filter context.
	Evaluate(post domain.Post, filterContext string) *domain.FilterVerdict
}

// FollowedTagResolver finds the followed hashtags each post matches.
type FollowedTagResolver interface {
	// Resolve maps post IDs to the followed tag names they carry. Posts without
	// matches may be absent from the result.
	Resolve(ctx context.Context, posts []domain.Post) (map[string][]string, error)
}
