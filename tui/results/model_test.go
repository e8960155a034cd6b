package results

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testSession() domain.Session {
	mk := func(id, author string, ago time.Duration) domain.Post {
		return domain.Post{
			ID:        id,
			Account:   domain.Author{ID: author, Acct: author},
			CreatedAt: now.Add(-ago),
			Content:   "<p>post " + id + "</p>",
		}
	}
	original := mk("o", "alice", 3*time.Hour)
	original.FavouritesCount = 10
	original.Card = &domain.PreviewCard{URL: "https://go.dev/", Title: "Go", Image: "https://go.dev/i.png", Type: "link"}
	b1 := mk("b1", "bob", 2*time.Hour)
	b1.Reblog = &original
	b2 := mk("b2", "carol", time.Hour)
	b2.Reblog = &original
	reply := mk("r", "alice", 30*time.Minute)
	reply.InReplyToID = "x"
	reply.InReplyToAccountID = "dave"

	return domain.NewSession("ns-1", []domain.Post{original, b1, b2, reply}, nil, now)
}

func newModel() Model {
	return New(testSession(), "me", catchup.DefaultSelection()).WithClock(func() time.Time { return now })
}

func TestNew_InvalidSelectionFallsBack(t *testing.T) {
	m := New(testSession(), "me", catchup.Selection{SortBy: "bogus"})
	if m.Selection() != catchup.DefaultSelection() {
		t.Fatalf("expected default selection, got %#v", m.Selection())
	}
}

func TestUpdate_TabCyclesCategories(t *testing.T) {
	m := newModel()
	if len(m.Posts()) != 3 {
		t.Fatalf("expected duplicate boost hidden, got %d posts", len(m.Posts()))
	}

	m, _ = m.Update(keyMsg("tab"))
	if m.Selection().Category != domain.CategoryOriginal || len(m.Posts()) != 1 {
		t.Fatalf("expected original tab, got %q with %d posts", m.Selection().Category, len(m.Posts()))
	}
	m, _ = m.Update(keyMsg("tab"))
	m, _ = m.Update(keyMsg("tab"))
	if m.Selection().Category != domain.CategoryBoosts || len(m.Posts()) != 1 {
		t.Fatalf("expected boosts tab with one kept boost, got %q %d", m.Selection().Category, len(m.Posts()))
	}
	m, _ = m.Update(keyMsg("shift+tab"))
	if m.Selection().Category != domain.CategoryReplies {
		t.Fatalf("expected replies tab, got %q", m.Selection().Category)
	}
}

func TestUpdate_SortOrderAndGroup(t *testing.T) {
	m := newModel()
	m, _ = m.Update(keyMsg("s"))
	if m.Selection().SortBy != catchup.SortReplies {
		t.Fatalf("expected next sort key, got %q", m.Selection().SortBy)
	}
	m, _ = m.Update(keyMsg("S"))
	if m.Selection().SortOrder != catchup.Desc {
		t.Fatalf("expected desc order")
	}
	m, _ = m.Update(keyMsg("g"))
	if m.Selection().GroupBy != catchup.GroupAccount {
		t.Fatalf("expected grouping by author")
	}
	if !strings.Contains(m.View(), "grouped by authors") {
		t.Fatalf("description must reflect grouping")
	}
}

func TestUpdate_AuthorCycleWrapsToAll(t *testing.T) {
	m := newModel()
	seen := map[string]bool{}
	for range 3 {
		m, _ = m.Update(keyMsg("a"))
		seen[m.Selection().AuthorID] = true
	}
	if !seen["alice"] {
		t.Fatalf("most active author must come up first: %v", seen)
	}
	m, _ = m.Update(keyMsg("a"))
	if m.Selection().AuthorID != "" {
		t.Fatalf("expected wrap to all authors, got %q", m.Selection().AuthorID)
	}
	m, _ = m.Update(keyMsg("a"))
	m, _ = m.Update(keyMsg("A"))
	if m.Selection().AuthorID != "" {
		t.Fatalf("A must clear the author")
	}
}

func TestUpdate_CursorStaysInRange(t *testing.T) {
	m := newModel()
	for range 10 {
		m, _ = m.Update(keyMsg("down"))
	}
	if m.Cursor() != len(m.Posts())-1 {
		t.Fatalf("cursor must stop at the last post, got %d", m.Cursor())
	}
	m, _ = m.Update(keyMsg("tab"))
	if m.Cursor() != 0 {
		t.Fatalf("changing the filter resets the cursor")
	}
}

func TestView_LinksPanel(t *testing.T) {
	m := newModel()
	m, _ = m.Update(keyMsg("L"))
	if !m.ShowingLinks() {
		t.Fatalf("expected links panel")
	}
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Top links") || !strings.Contains(out, "https://go.dev") {
		t.Fatalf("expected top link rendered:\n%s", out)
	}
}

func TestView_LinesFitWidth(t *testing.T) {
	m := newModel().SetSize(40, 30)
	for _, ln := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(ln); w > 40 {
			t.Fatalf("line wider than terminal (%d): %q", w, ansi.Strip(ln))
		}
	}
}

func TestRenderTimeBar_Layouts(t *testing.T) {
	var posts []domain.Post
	matched := map[string]bool{}
	for i := range 200 {
		id := string(rune('a' + i%26))
		posts = append(posts, domain.Post{ID: id, CreatedAt: now.Add(-time.Duration(i) * time.Minute)})
	}
	bar := renderTimeBar(posts, matched, 50, now)
	if w := ansi.StringWidth(bar); w != 50 {
		t.Fatalf("binned bar must fill the width, got %d", w)
	}

	dots := renderTimeBar(posts[:10], matched, 50, now)
	if w := ansi.StringWidth(dots); w != 10 {
		t.Fatalf("dotted bar must have one cell per post, got %d", w)
	}
	if renderTimeBar(nil, matched, 50, now) != "" {
		t.Fatalf("empty catch-up has no bar")
	}
}
