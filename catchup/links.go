package catchup

import (
	"sort"
	"strings"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// MinTopLinks is how many links are always kept, however rarely shared.
const MinTopLinks = 10

// NormalizeLinkURL strips one trailing slash so /path and /path/ are the same link.
func NormalizeLinkURL(u string) string {
	return strings.TrimSuffix(u, "/")
}

// AggregateLinks ranks the links shared in a catch-up. Filtered posts are
// ignored. A link counts once per sharer, and likes and boosts are only added
// when a share points at a different underlying post, so boosting the same
// original twice does not inflate them.
func AggregateLinks(posts []domain.Post, viewerID string) []domain.LinkAggregate {
	index := make(map[string]int)
	var links []domain.LinkAggregate

	for _, post := range posts {
		if Classify(post, viewerID) == domain.CategoryFiltered {
			continue
		}
		target := post.Target()
		card := target.Card
		if card == nil || card.URL == "" || card.Image == "" || card.Type != domain.CardTypeLink {
			continue
		}

		u := NormalizeLinkURL(card.URL)
		i, ok := index[u]
		if !ok {
			index[u] = len(links)
			links = append(links, domain.LinkAggregate{
				URL:     u,
				PostID:  target.ID,
				Card:    *card,
				Shared:  1,
				Sharers: []domain.Author{post.Account},
				Likes:   target.FavouritesCount,
				Boosts:  target.ReblogsCount,
			})
			continue
		}

		link := &links[i]
		if hasSharer(link.Sharers, post.Account.ID) {
			continue
		}
		link.Shared++
		link.Sharers = append(link.Sharers, post.Account)
		if link.PostID != target.ID {
			link.Likes += target.FavouritesCount
			link.Boosts += target.ReblogsCount
		}
	}

	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Shared != b.Shared {
			return a.Shared > b.Shared
		}
		if a.Boosts != b.Boosts {
			return a.Boosts > b.Boosts
		}
		return a.Likes > b.Likes
	})

	return trimLinks(links)
}

// trimLinks keeps the top MinTopLinks and, past those, cuts the list at the
// first link shared only once.
func trimLinks(links []domain.LinkAggregate) []domain.LinkAggregate {
	for i := MinTopLinks; i < len(links); i++ {
		if links[i].Shared <= 1 {
			return links[:i]
		}
	}
	return links
}

func hasSharer(sharers []domain.Author, id string) bool {
	for _, a := range sharers {
		if a.ID == id {
			return true
		}
	}
	return false
}
