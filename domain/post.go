package domain

import "time"

// Author is the account that wrote or boosted a post.
type Author struct {
	ID          string `json:"id"`
	Acct        string `json:"acct"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
	Bot         bool   `json:"bot,omitempty"`
	Group       bool   `json:"group,omitempty"`
}

// Name returns the display name, falling back to the handle.
func (a Author) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Acct
}

// MediaAttachment is an image, video or audio file attached to a post.
type MediaAttachment struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	URL        string `json:"url,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// PollOption is a single choice of a poll.
type PollOption struct {
	Title      string `json:"title"`
	VotesCount int    `json:"votesCount,omitempty"`
}

// Poll is the poll attached to a post.
type Poll struct {
	Options []PollOption `json:"options"`
}

// PreviewCard is the link preview the server generated for a post.
type PreviewCard struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Image string `json:"image,omitempty"`
	Type  string `json:"type,omitempty"`
}

// CardTypeLink is the preview card type of ordinary web links.
const CardTypeLink = "link"

// FilterResult is a server-side keyword filter that matched a post.
type FilterResult struct {
	Title     string     `json:"title"`
	Context   []string   `json:"context"`
	Action    string     `json:"action"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Post is a single status from the home timeline.
//
// Posts arrive from the feed source and are treated as read-mostly records.
// Thread, Filtered and FollowedTags are derived while collecting.
type Post struct {
	ID                 string            `json:"id"`
	URL                string            `json:"url,omitempty"`
	Account            Author            `json:"account"`
	CreatedAt          time.Time         `json:"createdAt"`
	Reblog             *Post             `json:"reblog,omitempty"`
	InReplyToID        string            `json:"inReplyToId,omitempty"`
	InReplyToAccountID string            `json:"inReplyToAccountId,omitempty"`
	Visibility         string            `json:"visibility,omitempty"`
	SpoilerText        string            `json:"spoilerText,omitempty"`
	Content            string            `json:"content"`
	MediaAttachments   []MediaAttachment `json:"mediaAttachments,omitempty"`
	Poll               *Poll             `json:"poll,omitempty"`
	Card               *PreviewCard      `json:"card,omitempty"`
	RepliesCount       int               `json:"repliesCount"`
	FavouritesCount    int               `json:"favouritesCount"`
	ReblogsCount       int               `json:"reblogsCount"`
	Tags               []string          `json:"tags,omitempty"`
	FilterResults      []FilterResult    `json:"filterResults,omitempty"`
	Group              bool              `json:"group,omitempty"`

	Thread       bool           `json:"thread,omitempty"`
	Filtered     *FilterVerdict `json:"filtered,omitempty"`
	FollowedTags []string       `json:"followedTags,omitempty"`
}

// Target returns the boosted post for reblogs and the post itself otherwise.
func (p *Post) Target() *Post {
	if p.Reblog != nil {
		return p.Reblog
	}
	return p
}

// IsReply reports whether the post answers another post.
func (p *Post) IsReply() bool {
	return p.InReplyToID != ""
}
