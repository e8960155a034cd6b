package catchup

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/app"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

const (
	// PageSize is how many posts are requested per timeline page.
	PageSize = 40

	// DefaultPageDelay keeps paging under the server's rate limits.
	DefaultPageDelay = time.Second
)

// PauseFunc waits for d or until ctx is done.
type PauseFunc func(ctx context.Context, d time.Duration) error

// Pause sleeps on a timer and gives up early when ctx is cancelled.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Collector drains a timeline into a catch-up.
type Collector struct {
	Filters   app.FilterEvaluator
	Tags      app.FollowedTagResolver
	ViewerID  string
	PageDelay time.Duration
	Pause     PauseFunc
}

// Collect reads pages from src until a whole page has nothing at or after
// windowStart, the feed runs out, or a fetch fails. A nil windowStart reads
// as far back as the server allows.
//
// Every page is examined in full even when it straddles the window edge; only
// a page with nothing in range stops the run. Fetch failures end the run early and the
// posts gathered so far are returned without error. Only cancellation of ctx
// is reported, and then nothing is returned.
func (c *Collector) Collect(ctx context.Context, src app.FeedSource, windowStart *time.Time) ([]domain.Post, error) {
	pause := c.Pause
	if pause == nil {
		pause = Pause
	}

	var all []domain.Post
	for page := 1; ; page++ {
		items, err := src.NextPage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Int("page", page).Int("collected", len(all)).Msg("timeline fetch failed, keeping partial catch-up")
			break
		}
		if len(items) == 0 {
			log.Debug().Int("page", page).Msg("end of timeline")
			break
		}

		tags := c.resolveTags(ctx, items)
		accepted := 0
		for _, item := range items {
			if windowStart != nil && item.CreatedAt.Before(*windowStart) {
				continue
			}
			accepted++

			if !isOwn(item, c.ViewerID) && c.Filters != nil {
				verdict := c.Filters.Evaluate(item, FilterContextHome)
				if verdict != nil && verdict.Action == domain.FilterHide {
					continue
				}
				item.Filtered = verdict
			}
			if t := tags[item.ID]; len(t) > 0 {
				item.FollowedTags = append([]string(nil), t...)
			}
			all = append(all, item)
		}

		log.Debug().Int("page", page).Int("items", len(items)).Int("accepted", accepted).Msg("timeline page")
		if accepted == 0 {
			break
		}

		if err := pause(ctx, c.PageDelay); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Msg("pacing interrupted, keeping partial catch-up")
			break
		}
	}

	MarkThreads(all)
	return all, nil
}

func (c *Collector) resolveTags(ctx context.Context, items []domain.Post) map[string][]string {
	if c.Tags == nil {
		return nil
	}
	tags, err := c.Tags.Resolve(ctx, items)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("followed tags unavailable for page")
		}
		return nil
	}
	return tags
}

// MarkThreads flags posts that start a thread: some other collected post
// replies to them and they are not replies themselves.
func MarkThreads(posts []domain.Post) {
	byID := make(map[string]int, len(posts))
	for i, p := range posts {
		byID[p.ID] = i
	}
	for _, p := range posts {
		if !p.IsReply() {
			continue
		}
		i, ok := byID[p.InReplyToID]
		if ok && !posts[i].IsReply() {
			posts[i].Thread = true
		}
	}
}
