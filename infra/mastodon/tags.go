package mastodon

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// followedTagResolver implements app.FollowedTagResolver. The followed tag
// list is fetched on first use and reused for the rest of the run.
type followedTagResolver struct {
	client *Client

	mu     sync.Mutex
	tags   map[string]string // lowercase -> display name
	loaded bool
}

// NewFollowedTagResolver creates a resolver backed by /api/v1/followed_tags.
func NewFollowedTagResolver(client *Client) *followedTagResolver {
	return &followedTagResolver{client: client}
}

// Resolve maps post IDs to the followed tags their content carries.
func (r *followedTagResolver) Resolve(ctx context.Context, posts []domain.Post) (map[string][]string, error) {
	followed, err := r.followed(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	if len(followed) == 0 {
		return out, nil
	}
	for _, p := range posts {
		target := p.Target()
		var hits []string
		seen := make(map[string]bool)
		for _, tag := range target.Tags {
			key := strings.ToLower(tag)
			name, ok := followed[key]
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			hits = append(hits, name)
		}
		if len(hits) > 0 {
			out[p.ID] = hits
		}
	}
	return out, nil
}

func (r *followedTagResolver) followed(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.tags, nil
	}

	q := url.Values{}
	q.Set("limit", "200")
	var tags []mastodonTag
	if err := r.client.GetJSON(ctx, "/api/v1/followed_tags", q, &tags); err != nil {
		return nil, fmt.Errorf("fetching followed tags: %w", err)
	}
	r.tags = make(map[string]string, len(tags))
	for _, t := range tags {
		r.tags[strings.ToLower(t.Name)] = t.Name
	}
	r.loaded = true
	return r.tags, nil
}
