package catchup

import "github.com/CrestNiraj12/terminalcatchup/domain"

// Classify puts a post into exactly one category. Rules are checked in a fixed
// priority order and the first match wins, so a filtered boost is "filtered"
// and a boost carrying a followed tag is "boosts".
func Classify(post domain.Post, viewerID string) domain.Category {
	switch {
	case isFiltered(post, viewerID):
		return domain.CategoryFiltered
	case post.Group:
		return domain.CategoryGroups
	case post.Reblog != nil:
		return domain.CategoryBoosts
	case len(post.FollowedTags) > 0:
		return domain.CategoryFollowedTags
	case post.IsReply() && post.InReplyToAccountID != post.Account.ID:
		return domain.CategoryReplies
	default:
		return domain.CategoryOriginal
	}
}

// CountCategories tallies the classification of every post.
func CountCategories(posts []domain.Post, viewerID string) map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, p := range posts {
		counts[Classify(p, viewerID)]++
	}
	return counts
}

func isFiltered(post domain.Post, viewerID string) bool {
	v := post.Filtered
	if v == nil || v.Action == domain.FilterNone || v.Action == domain.FilterBlur {
		return false
	}
	return !isOwn(post, viewerID)
}

func isOwn(post domain.Post, viewerID string) bool {
	return viewerID != "" && post.Target().Account.ID == viewerID
}
