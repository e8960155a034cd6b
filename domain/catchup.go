package domain

import "time"

// FilterAction is what the viewer's filter rules ask the client to do with a post.
type FilterAction string

const (
	FilterNone FilterAction = "none"
	FilterWarn FilterAction = "warn"
	FilterBlur FilterAction = "blur"
	FilterHide FilterAction = "hide"
)

// FilterVerdict is the outcome of evaluating a post against the viewer's filters.
type FilterVerdict struct {
	Action FilterAction `json:"action"`
	Titles []string     `json:"titles,omitempty"`
}

// Category is the single bucket a post is classified into.
type Category string

const (
	CategoryAll          Category = "all"
	CategoryFiltered     Category = "filtered"
	CategoryGroups       Category = "groups"
	CategoryBoosts       Category = "boosts"
	CategoryFollowedTags Category = "followedTags"
	CategoryReplies      Category = "replies"
	CategoryOriginal     Category = "original"
)

// Categories lists the concrete categories in display order.
var Categories = []Category{
	CategoryOriginal,
	CategoryReplies,
	CategoryBoosts,
	CategoryFollowedTags,
	CategoryGroups,
	CategoryFiltered,
}

// Session is one immutable snapshot of a catch-up run.
type Session struct {
	ID    string `json:"id"`
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
	// StartAt is nil when the catch-up reached back as far as the server allowed.
	StartAt *time.Time `json:"startAt"`
	EndAt   time.Time  `json:"endAt"`
}

// NewSession builds a session whose count is fixed to the collected posts.
func NewSession(id string, posts []Post, startAt *time.Time, endAt time.Time) Session {
	return Session{
		ID:      id,
		Posts:   posts,
		Count:   len(posts),
		StartAt: startAt,
		EndAt:   endAt,
	}
}

// Summary drops the posts.
func (s Session) Summary() SessionSummary {
	return SessionSummary{
		ID:      s.ID,
		Count:   s.Count,
		StartAt: s.StartAt,
		EndAt:   s.EndAt,
	}
}

// SessionSummary describes a past catch-up without its posts.
type SessionSummary struct {
	ID      string
	Count   int
	StartAt *time.Time
	EndAt   time.Time
}

// LinkAggregate is a link shared by one or more followed accounts.
type LinkAggregate struct {
	URL     string
	PostID  string
	Card    PreviewCard
	Shared  int
	Sharers []Author
	Likes   int
	Boosts  int
}
