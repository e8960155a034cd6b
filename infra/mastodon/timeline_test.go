package mastodon

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSanitizeForTerminal_RemovesEscapesAndControls(t *testing.T) {
	in := "ok\x1b[31mred\x1b[0m\x1b]8;;http://x\x07bad\x01\x02"
	got := sanitizeForTerminal(in)
	if strings.Contains(got, "\x1b") {
		t.Fatalf("expected ansi removed: %q", got)
	}
	if strings.ContainsRune(got, '\x01') || strings.ContainsRune(got, '\x02') {
		t.Fatalf("expected controls removed: %q", got)
	}
	if !strings.Contains(got, "ok") || !strings.Contains(got, "red") {
		t.Fatalf("expected plain text preserved: %q", got)
	}
}

const boostedStatus = `{
  "id": "100",
  "created_at": "2026-10-18T10:00:00Z",
  "url": "https://example.test/@grp/100",
  "content": "",
  "account": {"id": "g1", "acct": "grp@groups.example", "display_name": "Group", "group": true},
  "in_reply_to_id": null,
  "reblog": {
    "id": "55",
    "created_at": "2026-10-18T09:00:00.000Z",
    "url": "https://example.test/@alice/55",
    "content": "<p>look <a href=\"https://go.dev/\">here</a></p>",
    "account": {"id": "a1", "acct": "alice", "display_name": "Alice", "bot": true},
    "in_reply_to_id": "54",
    "in_reply_to_account_id": "a1",
    "replies_count": 3,
    "favourites_count": 7,
    "reblogs_count": 2,
    "tags": [{"name": "golang"}],
    "media_attachments": [{"id": "m1", "type": "image", "url": "https://img", "preview_url": "https://pimg",
      "meta": {"original": {"width": 640, "height": 480}}}],
    "poll": {"options": [{"title": "yes", "votes_count": 4}, {"title": "no", "votes_count": null}]},
    "card": {"url": "https://go.dev/", "title": "Go", "image": "https://go.dev/img.png", "type": "link"},
    "filtered": [{"filter": {"title": "spoilers", "context": ["home", "public"], "filter_action": "blur",
      "expires_at": "2026-12-01T00:00:00Z"}}]
  }
}`

func TestMapStatus_MapsBoostedGroupPost(t *testing.T) {
	var st mastodonStatus
	if err := json.Unmarshal([]byte(boostedStatus), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := mapStatus(st)

	if p.ID != "100" || !p.Group || p.Reblog == nil {
		t.Fatalf("expected boost from group actor: %#v", p)
	}
	if !p.CreatedAt.Equal(time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt: %v", p.CreatedAt)
	}
	r := p.Reblog
	if r.Account.Acct != "alice" || !r.Account.Bot || r.Group {
		t.Fatalf("unexpected boosted account: %#v", r.Account)
	}
	if r.InReplyToID != "54" || r.InReplyToAccountID != "a1" {
		t.Fatalf("expected reply fields: %q %q", r.InReplyToID, r.InReplyToAccountID)
	}
	if r.RepliesCount != 3 || r.FavouritesCount != 7 || r.ReblogsCount != 2 {
		t.Fatalf("unexpected counters: %#v", r)
	}
	if len(r.MediaAttachments) != 1 || r.MediaAttachments[0].Width != 640 || r.MediaAttachments[0].Height != 480 {
		t.Fatalf("unexpected media: %#v", r.MediaAttachments)
	}
	if r.Poll == nil || len(r.Poll.Options) != 2 || r.Poll.Options[0].VotesCount != 4 || r.Poll.Options[1].VotesCount != 0 {
		t.Fatalf("unexpected poll: %#v", r.Poll)
	}
	if r.Card == nil || r.Card.Type != "link" || r.Card.URL != "https://go.dev/" {
		t.Fatalf("unexpected card: %#v", r.Card)
	}
	if len(r.Tags) != 1 || r.Tags[0] != "golang" {
		t.Fatalf("unexpected tags: %v", r.Tags)
	}
	if len(r.FilterResults) != 1 {
		t.Fatalf("expected filter result: %#v", r.FilterResults)
	}
	f := r.FilterResults[0]
	if f.Title != "spoilers" || f.Action != "blur" || f.ExpiresAt == nil || len(f.Context) != 2 {
		t.Fatalf("unexpected filter result: %#v", f)
	}
	if p.InReplyToID != "" || p.Card != nil || p.Poll != nil {
		t.Fatalf("boost wrapper should carry no content fields: %#v", p)
	}
}

func TestMapFilterResults_DefaultsToWarn(t *testing.T) {
	var in []mastodonFilterResult
	if err := json.Unmarshal([]byte(`[{"filter": {"title": "x", "context": ["home"]}}]`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := mapFilterResults(in)
	if len(got) != 1 || got[0].Action != "warn" || got[0].ExpiresAt != nil {
		t.Fatalf("unexpected results: %#v", got)
	}
}
