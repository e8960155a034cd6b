// Package results is the catch-up browser: category tabs, sorting, grouping,
// author focus, a time bar and the top links of one catch-up.
package results

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/tui/common"
)

// Tabs are the category filters in display order.
var Tabs = append([]domain.Category{domain.CategoryAll}, domain.Categories...)

// Model holds the state of one opened catch-up.
type Model struct {
	session  domain.Session
	viewerID string
	sel      catchup.Selection
	view     catchup.View
	counts   map[domain.Category]int
	links    []domain.LinkAggregate

	cursor     int
	offset     int
	showLinks  bool
	linkCursor int
	showHints  bool

	width  int
	height int
	keys   common.KeyMap
	now    func() time.Time
}

// New opens a session with the given selection. An invalid selection falls
// back to the default one.
func New(session domain.Session, viewerID string, sel catchup.Selection) Model {
	if sel.Validate() != nil {
		sel = catchup.DefaultSelection()
	}
	m := Model{
		session:  session,
		viewerID: viewerID,
		sel:      sel,
		counts:   catchup.CountCategories(session.Posts, viewerID),
		links:    catchup.AggregateLinks(session.Posts, viewerID),
		width:    80,
		height:   24,
		keys:     common.DefaultKeyMap(),
		now:      time.Now,
	}
	m.project()
	return m
}

// WithClock replaces the clock used for the time bar.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

// Session returns the catch-up being browsed.
func (m Model) Session() domain.Session { return m.session }

// Selection returns the current selection.
func (m Model) Selection() catchup.Selection { return m.sel }

// Posts returns the posts currently shown, in display order.
func (m Model) Posts() []domain.Post { return m.view.Posts }

// Cursor returns the index of the focused post.
func (m Model) Cursor() int { return m.cursor }

// ShowingLinks reports whether the top links panel is open.
func (m Model) ShowingLinks() bool { return m.showLinks }

// SetSize sets the terminal size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.ensureVisible()
	return m
}

func (m *Model) project() {
	m.view = catchup.Project(m.session, m.sel, m.viewerID)
	m.cursor = min(m.cursor, max(len(m.view.Posts)-1, 0))
	m.offset = min(m.offset, m.cursor)
	m.ensureVisible()
}

// Update handles messages for the results view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ToggleHints) {
			m.showHints = !m.showHints
			return m, nil
		}
		if key.Matches(msg, m.keys.Links) {
			m.showLinks = !m.showLinks
			m.linkCursor = 0
			return m, nil
		}
		if m.showLinks {
			return m.updateLinks(msg)
		}
		return m.updatePosts(msg)
	}
	return m, nil
}

func (m Model) updateLinks(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.linkCursor > 0 {
			m.linkCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.linkCursor < len(m.links)-1 {
			m.linkCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.linkCursor < len(m.links) {
			return m, common.OpenURL(m.links[m.linkCursor].URL)
		}
	}
	return m, nil
}

func (m Model) updatePosts(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Posts)-1 {
			m.cursor++
		}
		m.ensureVisible()

	case key.Matches(msg, m.keys.NextCategory):
		m.sel.Category = cycle(Tabs, m.sel.Category, 1)
		m.resetCursor()

	case key.Matches(msg, m.keys.PrevCategory):
		m.sel.Category = cycle(Tabs, m.sel.Category, -1)
		m.resetCursor()

	case key.Matches(msg, m.keys.Sort):
		m.sel.SortBy = cycle(catchup.SortKeys, m.sel.SortBy, 1)
		m.resetCursor()

	case key.Matches(msg, m.keys.Order):
		if m.sel.SortOrder == catchup.Desc {
			m.sel.SortOrder = catchup.Asc
		} else {
			m.sel.SortOrder = catchup.Desc
		}
		m.resetCursor()

	case key.Matches(msg, m.keys.Group):
		if m.sel.GroupBy == catchup.GroupAccount {
			m.sel.GroupBy = catchup.GroupNone
		} else {
			m.sel.GroupBy = catchup.GroupAccount
		}
		m.resetCursor()

	case key.Matches(msg, m.keys.Author):
		m.sel.AuthorID = nextAuthor(m.view.AuthorRanking, m.sel.AuthorID)
		m.resetCursor()

	case key.Matches(msg, m.keys.ClearAuthor):
		m.sel.AuthorID = ""
		m.resetCursor()

	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.view.Posts) {
			p := m.view.Posts[m.cursor]
			return m, common.OpenURL(p.Target().URL)
		}
	}
	return m, nil
}

func (m *Model) resetCursor() {
	m.cursor, m.offset = 0, 0
	m.project()
}

// ensureVisible scrolls so the cursor stays within the visible page.
func (m *Model) ensureVisible() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
}

// pageSize is how many posts fit below the header; each post takes two lines.
func (m Model) pageSize() int {
	return max((m.height-headerLines-footerLines)/2, 1)
}

func cycle[T comparable](list []T, cur T, step int) T {
	idx := 0
	for i, v := range list {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(list)) % len(list)
	return list[idx]
}

// nextAuthor walks the ranking and wraps back to no author after the last one.
func nextAuthor(ranking []string, cur string) string {
	if len(ranking) == 0 {
		return ""
	}
	if cur == "" {
		return ranking[0]
	}
	for i, id := range ranking {
		if id != cur {
			continue
		}
		if i+1 < len(ranking) {
			return ranking[i+1]
		}
		return ""
	}
	return ranking[0]
}
