package catchup

import (
	"time"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func author(id string) domain.Author {
	return domain.Author{ID: id, Acct: id}
}

func post(id, authorID string, createdAt time.Time) domain.Post {
	return domain.Post{ID: id, Account: author(authorID), CreatedAt: createdAt}
}

func boost(id, boosterID string, createdAt time.Time, target domain.Post) domain.Post {
	p := post(id, boosterID, createdAt)
	p.Reblog = &target
	return p
}

func ids(posts []domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
