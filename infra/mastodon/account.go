package mastodon

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/CrestNiraj12/terminalcatchup/app"
)

// accountService implements app.AccountService using the Mastodon API.
type accountService struct {
	client *Client
	cached *app.Profile
}

// NewAccountService creates an AccountService backed by Mastodon.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

// CurrentProfile fetches the viewer once per process; the account ID is what
// catch-ups are namespaced and filtered by, so it never changes mid-run.
func (s *accountService) CurrentProfile(ctx context.Context) (app.Profile, error) {
	if s.cached != nil {
		return *s.cached, nil
	}

	var acct mastodonAccount
	if err := s.client.GetJSON(ctx, "/api/v1/accounts/verify_credentials", nil, &acct); err != nil {
		return app.Profile{}, fmt.Errorf("fetching account: %w", err)
	}
	if acct.ID == "" {
		return app.Profile{}, fmt.Errorf("fetching account: empty account id")
	}

	p := app.Profile{
		ID:          acct.ID,
		Username:    sanitizeForTerminal(acct.Acct),
		DisplayName: sanitizeForTerminal(acct.DisplayName),
	}
	s.cached = &p
	return p, nil
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)

// sanitizeForTerminal drops escape sequences and control characters from
// server supplied strings.
func sanitizeForTerminal(s string) string {
	s = ansiEscape.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
