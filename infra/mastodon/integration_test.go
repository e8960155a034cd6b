package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

func newTestClient(h http.Handler) *Client {
	return &Client{
		baseURL:       "http://example.test",
		tokenProvider: staticToken("tok"),
		http:          &http.Client{Transport: handlerRoundTripper{h: h}},
	}
}

func statusJSON(id, accountID, acct string, createdAt time.Time) map[string]any {
	return map[string]any{
		"id":               id,
		"url":              "https://example.test/@" + acct + "/" + id,
		"content":          "<p>post " + id + "</p>",
		"created_at":       createdAt.UTC().Format(time.RFC3339),
		"favourites_count": 0,
		"reblogs_count":    0,
		"replies_count":    0,
		"in_reply_to_id":   nil,
		"media_attachments": []any{},
		"tags":             []any{},
		"account":          map[string]any{"id": accountID, "display_name": "", "acct": acct},
	}
}

func TestHomePager_PagesWithMaxIDAndIncludeReblogs(t *testing.T) {
	now := time.Now()
	var queries []string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/timelines/home" {
			t.Fatalf("unexpected req: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Fatalf("missing auth header: %q", auth)
		}
		q := r.URL.Query()
		queries = append(queries, q.Get("max_id"))
		if q.Get("limit") != "2" {
			t.Fatalf("expected limit=2, got %q", q.Get("limit"))
		}
		if q.Get("include_reblogs") != "true" {
			t.Fatalf("expected include_reblogs=true")
		}
		switch q.Get("max_id") {
		case "":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				statusJSON("20", "a", "alice", now),
				statusJSON("19", "b", "bob", now.Add(-time.Minute)),
			})
		case "19":
			_ = json.NewEncoder(w).Encode([]map[string]any{})
		default:
			t.Fatalf("unexpected max_id %q", q.Get("max_id"))
		}
	})

	src := NewTimelineService(newTestClient(h), true).HomeTimeline(2)
	first, err := src.NextPage(context.Background())
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if len(first) != 2 || first[0].ID != "20" || first[1].Account.Acct != "bob" {
		t.Fatalf("unexpected first page: %#v", first)
	}
	second, err := src.NextPage(context.Background())
	if err != nil || len(second) != 0 {
		t.Fatalf("expected empty second page, got %d items err=%v", len(second), err)
	}
	third, err := src.NextPage(context.Background())
	if err != nil || len(third) != 0 {
		t.Fatalf("expected exhausted pager, got %d items err=%v", len(third), err)
	}
	if len(queries) != 2 || queries[1] != "19" {
		t.Fatalf("expected two requests paging by max_id, got %v", queries)
	}
}

func TestHomePager_OmitsIncludeReblogsByDefault(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["include_reblogs"]; ok {
			t.Fatalf("include_reblogs should not be sent")
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	src := NewTimelineService(newTestClient(h), false).HomeTimeline(40)
	if _, err := src.NextPage(context.Background()); err != nil {
		t.Fatalf("page failed: %v", err)
	}
}

func TestClient_UnauthorizedMapsToDomainError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"The access token is invalid"}`))
	})
	src := NewTimelineService(newTestClient(h), false).HomeTimeline(40)
	_, err := src.NextPage(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_ServerErrorCarriesBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	})
	err := newTestClient(h).GetJSON(context.Background(), "/api/v1/x", nil, &struct{}{})
	if err == nil || !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestAccountService_CurrentProfile_Caches(t *testing.T) {
	hits := 0
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/verify_credentials" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		hits++
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "42", "acct": "me\x1b[31m", "display_name": "Me"})
	})
	svc := NewAccountService(newTestClient(h))
	for range 2 {
		p, err := svc.CurrentProfile(context.Background())
		if err != nil {
			t.Fatalf("profile failed: %v", err)
		}
		if p.ID != "42" || p.Username != "me" || p.DisplayName != "Me" {
			t.Fatalf("unexpected profile: %#v", p)
		}
	}
	if hits != 1 {
		t.Fatalf("expected a single request, got %d", hits)
	}
}

func TestFollowedTagResolver_MatchesCaseInsensitively(t *testing.T) {
	hits := 0
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/followed_tags" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		hits++
		_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "GoLang"}, {"name": "fediverse"}})
	})
	r := NewFollowedTagResolver(newTestClient(h))

	posts := []domain.Post{
		{ID: "1", Tags: []string{"golang", "GOLANG", "cats"}},
		{ID: "2", Tags: []string{"cats"}},
		{ID: "3", Reblog: &domain.Post{ID: "9", Tags: []string{"Fediverse"}}},
	}
	got, err := r.Resolve(context.Background(), posts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(got["1"]) != 1 || got["1"][0] != "GoLang" {
		t.Fatalf("expected one followed tag on post 1, got %v", got["1"])
	}
	if _, ok := got["2"]; ok {
		t.Fatalf("post 2 follows nothing: %v", got["2"])
	}
	if len(got["3"]) != 1 || got["3"][0] != "fediverse" {
		t.Fatalf("expected boost target tags to count, got %v", got["3"])
	}

	if _, err := r.Resolve(context.Background(), posts); err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected followed tags fetched once, got %d", hits)
	}
}

func TestFollowedTagResolver_PropagatesFailure(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r := NewFollowedTagResolver(newTestClient(h))
	if _, err := r.Resolve(context.Background(), []domain.Post{{ID: "1"}}); err == nil {
		t.Fatalf("expected error")
	}
}
