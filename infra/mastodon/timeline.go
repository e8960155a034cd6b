package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/app"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// timelineService implements app.TimelineService using the Mastodon API.
type timelineService struct {
	client         *Client
	includeReblogs bool
}

// NewTimelineService creates a TimelineService backed by Mastodon.
// includeReblogs adds include_reblogs=true to home requests, which Pixelfed
// needs before it returns boosts at all.
func NewTimelineService(client *Client, includeReblogs bool) *timelineService {
	return &timelineService{
		client:         client,
		includeReblogs: includeReblogs,
	}
}

// HomeTimeline returns a pager walking the home timeline backwards in time.
func (s *timelineService) HomeTimeline(limit int) app.FeedSource {
	return &homePager{
		client:         s.client,
		limit:          limit,
		includeReblogs: s.includeReblogs,
	}
}

// homePager pages /api/v1/timelines/home with max_id.
type homePager struct {
	client         *Client
	limit          int
	includeReblogs bool
	maxID          string
	done           bool
}

func (p *homePager) NextPage(ctx context.Context) ([]domain.Post, error) {
	if p.done {
		return nil, nil
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.limit))
	if p.maxID != "" {
		q.Set("max_id", p.maxID)
	}
	if p.includeReblogs {
		q.Set("include_reblogs", "true")
	}

	var statuses []mastodonStatus
	if err := p.client.GetJSON(ctx, "/api/v1/timelines/home", q, &statuses); err != nil {
		return nil, fmt.Errorf("fetching home timeline: %w", err)
	}
	if len(statuses) == 0 {
		p.done = true
		return nil, nil
	}
	p.maxID = statuses[len(statuses)-1].ID

	return mapStatuses(statuses), nil
}

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID                 string                    `json:"id"`
	URL                string                    `json:"url"`
	CreatedAt          string                    `json:"created_at"`
	Account            mastodonAccount           `json:"account"`
	Reblog             *mastodonStatus           `json:"reblog"`
	InReplyToID        *string                   `json:"in_reply_to_id"`
	InReplyToAccountID *string                   `json:"in_reply_to_account_id"`
	Visibility         string                    `json:"visibility"`
	SpoilerText        string                    `json:"spoiler_text"`
	Content            string                    `json:"content"` // HTML
	MediaAttachments   []mastodonMediaAttachment `json:"media_attachments"`
	Poll               *mastodonPoll             `json:"poll"`
	Card               *mastodonCard             `json:"card"`
	RepliesCount       int                       `json:"replies_count"`
	FavouritesCount    int                       `json:"favourites_count"`
	ReblogsCount       int                       `json:"reblogs_count"`
	Tags               []mastodonTag             `json:"tags"`
	Filtered           []mastodonFilterResult    `json:"filtered"`
}

type mastodonAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
	Avatar      string `json:"avatar"`
	Bot         bool   `json:"bot"`
	Group       bool   `json:"group"`
}

type mastodonMediaAttachment struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url"`
	Meta       struct {
		Original struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"original"`
	} `json:"meta"`
}

type mastodonPoll struct {
	Options []struct {
		Title      string `json:"title"`
		VotesCount *int   `json:"votes_count"`
	} `json:"options"`
}

type mastodonCard struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Image string `json:"image"`
	Type  string `json:"type"`
}

type mastodonTag struct {
	Name string `json:"name"`
}

type mastodonFilterResult struct {
	Filter struct {
		Title        string   `json:"title"`
		Context      []string `json:"context"`
		ExpiresAt    *string  `json:"expires_at"`
		FilterAction string   `json:"filter_action"`
	} `json:"filter"`
}

func mapStatuses(statuses []mastodonStatus) []domain.Post {
	posts := make([]domain.Post, 0, len(statuses))
	for _, st := range statuses {
		posts = append(posts, mapStatus(st))
	}
	return posts
}

func mapStatus(st mastodonStatus) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, st.CreatedAt)

	p := domain.Post{
		ID:                 st.ID,
		URL:                st.URL,
		Account:            mapAccount(st.Account),
		CreatedAt:          createdAt,
		InReplyToID:        deref(st.InReplyToID),
		InReplyToAccountID: deref(st.InReplyToAccountID),
		Visibility:         st.Visibility,
		SpoilerText:        st.SpoilerText,
		Content:            st.Content,
		MediaAttachments:   mapMediaAttachments(st.MediaAttachments),
		RepliesCount:       st.RepliesCount,
		FavouritesCount:    st.FavouritesCount,
		ReblogsCount:       st.ReblogsCount,
		FilterResults:      mapFilterResults(st.Filtered),
	}
	for _, t := range st.Tags {
		p.Tags = append(p.Tags, t.Name)
	}
	if st.Poll != nil {
		p.Poll = &domain.Poll{}
		for _, o := range st.Poll.Options {
			opt := domain.PollOption{Title: o.Title}
			if o.VotesCount != nil {
				opt.VotesCount = *o.VotesCount
			}
			p.Poll.Options = append(p.Poll.Options, opt)
		}
	}
	if st.Card != nil {
		p.Card = &domain.PreviewCard{
			URL:   st.Card.URL,
			Title: st.Card.Title,
			Image: st.Card.Image,
			Type:  st.Card.Type,
		}
	}
	if st.Reblog != nil {
		target := mapStatus(*st.Reblog)
		p.Reblog = &target
		// A group actor boosting into our timeline is how group posts arrive.
		p.Group = st.Account.Group
	}
	return p
}

func mapAccount(a mastodonAccount) domain.Author {
	return domain.Author{
		ID:          a.ID,
		Acct:        a.Acct,
		DisplayName: a.DisplayName,
		Avatar:      a.Avatar,
		Bot:         a.Bot,
		Group:       a.Group,
	}
}

func mapMediaAttachments(in []mastodonMediaAttachment) []domain.MediaAttachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.MediaAttachment, 0, len(in))
	for _, m := range in {
		out = append(out, domain.MediaAttachment{
			ID:         m.ID,
			Type:       m.Type,
			URL:        m.URL,
			PreviewURL: m.PreviewURL,
			Width:      int(m.Meta.Original.Width),
			Height:     int(m.Meta.Original.Height),
		})
	}
	return out
}

func mapFilterResults(in []mastodonFilterResult) []domain.FilterResult {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.FilterResult, 0, len(in))
	for _, f := range in {
		r := domain.FilterResult{
			Title:   f.Filter.Title,
			Context: f.Filter.Context,
			Action:  f.Filter.FilterAction,
		}
		if r.Action == "" {
			r.Action = string(domain.FilterWarn)
		}
		if f.Filter.ExpiresAt != nil {
			if t, err := time.Parse(time.RFC3339, *f.Filter.ExpiresAt); err == nil {
				r.ExpiresAt = &t
			}
		}
		out = append(out, r)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
