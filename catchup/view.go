package catchup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// SortKey names the secondary ordering of a catch-up view.
type SortKey string

const (
	SortCreatedAt  SortKey = "createdAt"
	SortReplies    SortKey = "repliesCount"
	SortFavourites SortKey = "favouritesCount"
	SortReblogs    SortKey = "reblogsCount"
	SortDensity    SortKey = "density"
)

// SortKeys lists the sort keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortCreatedAt, SortReplies, SortFavourites, SortReblogs, SortDensity}

// SortOrder is asc or desc.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// GroupBy is the primary ordering of a catch-up view.
type GroupBy string

const (
	GroupNone    GroupBy = ""
	GroupAccount GroupBy = "account"
)

// Selection is what the reader picked to look at.
type Selection struct {
	Category  domain.Category
	AuthorID  string
	SortBy    SortKey
	SortOrder SortOrder
	GroupBy   GroupBy
}

// DefaultSelection shows everything, oldest first.
func DefaultSelection() Selection {
	return Selection{
		Category:  domain.CategoryAll,
		SortBy:    SortCreatedAt,
		SortOrder: Asc,
	}
}

// Validate rejects unknown keys.
func (s Selection) Validate() error {
	if s.Category != domain.CategoryAll && !knownCategory(s.Category) {
		return fmt.Errorf("%w: category %q", domain.ErrInvalidSelection, s.Category)
	}
	if !knownSortKey(s.SortBy) {
		return fmt.Errorf("%w: sort %q", domain.ErrInvalidSelection, s.SortBy)
	}
	if s.SortOrder != Asc && s.SortOrder != Desc {
		return fmt.Errorf("%w: order %q", domain.ErrInvalidSelection, s.SortOrder)
	}
	if s.GroupBy != GroupNone && s.GroupBy != GroupAccount {
		return fmt.Errorf("%w: group %q", domain.ErrInvalidSelection, s.GroupBy)
	}
	return nil
}

// View is the projection of a session through a Selection.
type View struct {
	// Posts in display order, boosts of an already shown post removed.
	Posts []domain.Post
	// Boosters maps the ID of a shown boost to the other accounts that boosted
	// the same post.
	Boosters map[string][]domain.Author
	// Authors and AuthorCounts cover posts matching the category.
	Authors      map[string]domain.Author
	AuthorCounts map[string]int
	// AuthorRanking orders author IDs by post count, most active first.
	AuthorRanking []string
	// Matched holds the IDs of every post matching the category and author,
	// hidden duplicate boosts included.
	Matched map[string]bool
}

// Project filters, deduplicates and sorts a session for display.
func Project(session domain.Session, sel Selection, viewerID string) View {
	v := View{
		Boosters:     make(map[string][]domain.Author),
		Authors:      make(map[string]domain.Author),
		AuthorCounts: make(map[string]int),
		Matched:      make(map[string]bool),
	}

	var filtered []domain.Post
	for _, p := range session.Posts {
		if sel.Category != "" && sel.Category != domain.CategoryAll && Classify(p, viewerID) != sel.Category {
			continue
		}
		filtered = append(filtered, p)
		if _, ok := v.Authors[p.Account.ID]; !ok {
			v.Authors[p.Account.ID] = p.Account
			v.AuthorRanking = append(v.AuthorRanking, p.Account.ID)
		}
		v.AuthorCounts[p.Account.ID]++
	}
	sort.SliceStable(v.AuthorRanking, func(i, j int) bool {
		return v.AuthorCounts[v.AuthorRanking[i]] > v.AuthorCounts[v.AuthorRanking[j]]
	})

	// First boost of a post stays visible, later ones only add their booster.
	kept := make(map[string]string)
	hidden := make(map[string]bool)
	for _, p := range filtered {
		if p.Reblog == nil {
			continue
		}
		if keptID, ok := kept[p.Reblog.ID]; ok {
			v.Boosters[keptID] = append(v.Boosters[keptID], p.Account)
			hidden[p.ID] = true
			continue
		}
		kept[p.Reblog.ID] = p.ID
	}

	authorActive := false
	if sel.AuthorID != "" {
		_, authorActive = v.AuthorCounts[sel.AuthorID]
	}

	for _, p := range filtered {
		if authorActive && p.Account.ID != sel.AuthorID && !boostedBy(v.Boosters[p.ID], sel.AuthorID) {
			continue
		}
		v.Matched[p.ID] = true
		if !hidden[p.ID] {
			v.Posts = append(v.Posts, p)
		}
	}

	sortPosts(v.Posts, sel, v.AuthorRanking)
	return v
}

func sortPosts(posts []domain.Post, sel Selection, ranking []string) {
	rank := make(map[string]int, len(ranking))
	for i, id := range ranking {
		rank[id] = i
	}
	sortBy := sel.SortBy
	if sortBy == "" {
		sortBy = SortCreatedAt
	}

	var density map[string]float64
	if sortBy == SortDensity {
		density = make(map[string]float64, len(posts))
		for _, p := range posts {
			density[p.ID] = Density(p)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := &posts[i], &posts[j]
		if sel.GroupBy == GroupAccount {
			ra, rb := rank[a.Account.ID], rank[b.Account.ID]
			if ra != rb {
				return ra < rb
			}
		}

		var ka, kb float64
		ta, tb := a, b
		switch sortBy {
		case SortCreatedAt:
			ka, kb = float64(a.CreatedAt.UnixNano()), float64(b.CreatedAt.UnixNano())
		case SortDensity:
			ka, kb = density[a.ID], density[b.ID]
			ta, tb = a.Target(), b.Target()
		default:
			ta, tb = a.Target(), b.Target()
			ka, kb = sortValue(ta, sortBy), sortValue(tb, sortBy)
		}

		if ka != kb {
			if sel.SortOrder == Desc {
				return ka > kb
			}
			return ka < kb
		}
		return ta.CreatedAt.Before(tb.CreatedAt)
	})
}

func sortValue(p *domain.Post, key SortKey) float64 {
	switch key {
	case SortReplies:
		return float64(p.RepliesCount)
	case SortFavourites:
		return float64(p.FavouritesCount)
	case SortReblogs:
		return float64(p.ReblogsCount)
	}
	return 0
}

func boostedBy(boosters []domain.Author, id string) bool {
	for _, a := range boosters {
		if a.ID == id {
			return true
		}
	}
	return false
}

func knownCategory(c domain.Category) bool {
	for _, k := range domain.Categories {
		if k == c {
			return true
		}
	}
	return false
}

func knownSortKey(k SortKey) bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryAll:          "all posts",
	domain.CategoryOriginal:     "original posts",
	domain.CategoryReplies:      "replies",
	domain.CategoryBoosts:       "boosts",
	domain.CategoryFollowedTags: "followed tags",
	domain.CategoryGroups:       "groups",
	domain.CategoryFiltered:     "filtered posts",
}

var sortLabels = map[SortKey][2]string{
	SortCreatedAt:  {"oldest", "latest"},
	SortReblogs:    {"fewest boosts", "most boosts"},
	SortFavourites: {"fewest likes", "most likes"},
	SortReplies:    {"fewest replies", "most replies"},
	SortDensity:    {"least dense", "most dense"},
}

// Describe summarises a selection, e.g. "Showing boosts, most likes first,
// grouped by authors". author is the handle of the selected author, if any.
func Describe(sel Selection, author string) string {
	cat := sel.Category
	if cat == "" {
		cat = domain.CategoryAll
	}
	labels, ok := sortLabels[sel.SortBy]
	if !ok {
		labels = sortLabels[SortCreatedAt]
	}
	order := labels[0]
	if sel.SortOrder == Desc {
		order = labels[1]
	}

	var b strings.Builder
	b.WriteString("Showing ")
	b.WriteString(categoryLabels[cat])
	if author != "" {
		b.WriteString(" by @" + author)
	}
	b.WriteString(", " + order + " first")
	if sel.GroupBy == GroupAccount {
		b.WriteString(", grouped by authors")
	}
	return b.String()
}
