package catchup

import (
	"testing"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

func TestClassify_PriorityOrder(t *testing.T) {
	reply := post("r", "a", testNow)
	reply.InReplyToID = "x"
	reply.InReplyToAccountID = "b"

	selfReply := post("sr", "a", testNow)
	selfReply.InReplyToID = "x"
	selfReply.InReplyToAccountID = "a"

	tagged := post("t", "a", testNow)
	tagged.FollowedTags = []string{"golang"}

	taggedReply := reply
	taggedReply.FollowedTags = []string{"golang"}

	b := boost("b", "c", testNow, post("o", "a", testNow))
	taggedBoost := b
	taggedBoost.FollowedTags = []string{"golang"}

	group := b
	group.Group = true

	hiddenBoost := b
	hiddenBoost.Filtered = &domain.FilterVerdict{Action: domain.FilterHide}

	warned := post("w", "a", testNow)
	warned.Filtered = &domain.FilterVerdict{Action: domain.FilterWarn}

	blurred := post("bl", "a", testNow)
	blurred.Filtered = &domain.FilterVerdict{Action: domain.FilterBlur}

	ownWarned := post("ow", "me", testNow)
	ownWarned.Filtered = &domain.FilterVerdict{Action: domain.FilterWarn}

	tests := []struct {
		name string
		post domain.Post
		want domain.Category
	}{
		{"original", post("p", "a", testNow), domain.CategoryOriginal},
		{"reply to other", reply, domain.CategoryReplies},
		{"self reply is original", selfReply, domain.CategoryOriginal},
		{"followed tag", tagged, domain.CategoryFollowedTags},
		{"followed tag beats reply", taggedReply, domain.CategoryFollowedTags},
		{"boost", b, domain.CategoryBoosts},
		{"boost beats followed tag", taggedBoost, domain.CategoryBoosts},
		{"group beats boost", group, domain.CategoryGroups},
		{"filtered boost", hiddenBoost, domain.CategoryFiltered},
		{"warn is filtered", warned, domain.CategoryFiltered},
		{"blur is not filtered", blurred, domain.CategoryOriginal},
		{"own posts are never filtered", ownWarned, domain.CategoryOriginal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.post, "me"); got != tc.want {
				t.Fatalf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCountCategories_SumsToTotal(t *testing.T) {
	reply := post("r", "a", testNow)
	reply.InReplyToID = "x"
	reply.InReplyToAccountID = "b"
	posts := []domain.Post{
		post("1", "a", testNow),
		post("2", "a", testNow),
		reply,
		boost("3", "c", testNow, post("o", "a", testNow)),
	}

	counts := CountCategories(posts, "me")
	total := 0
	for _, c := range domain.Categories {
		total += counts[c]
	}
	if total != len(posts) {
		t.Fatalf("counts must cover every post once: %v", counts)
	}
	if counts[domain.CategoryOriginal] != 2 || counts[domain.CategoryReplies] != 1 || counts[domain.CategoryBoosts] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, ok := counts[domain.CategoryGroups]; !ok {
		t.Fatalf("empty categories must be present with zero")
	}
}
