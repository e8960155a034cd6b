package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/tui/common"
)

const (
	headerLines = 7
	footerLines = 3
)

var tabLabels = map[domain.Category]string{
	domain.CategoryAll:          "All",
	domain.CategoryOriginal:     "Original",
	domain.CategoryReplies:      "Replies",
	domain.CategoryBoosts:       "Boosts",
	domain.CategoryFollowedTags: "Followed tags",
	domain.CategoryGroups:       "Groups",
	domain.CategoryFiltered:     "Filtered",
}

// View renders the results view.
func (m Model) View() string {
	width := max(m.width, 20)

	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Catch-up"))
	b.WriteString(common.TaglineStyle.Render(rangeLine(m.session)))
	b.WriteString("\n")
	b.WriteString(common.Truncate(m.renderTabs(), width))
	b.WriteString("\n")
	b.WriteString(renderTimeBar(m.session.Posts, m.view.Matched, width-2, m.now()))
	b.WriteString("\n")
	b.WriteString(common.Truncate(common.TimestampStyle.Render(catchup.Describe(m.sel, m.authorHandle())), width))
	b.WriteString("\n\n")

	if m.showLinks {
		b.WriteString(m.renderLinks(width))
	} else {
		b.WriteString(m.renderPosts(width))
	}

	b.WriteString(m.renderHints(width))
	return clampLines(b.String(), width)
}

func clampLines(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = common.Truncate(ln, width)
	}
	return strings.Join(lines, "\n")
}

func rangeLine(s domain.Session) string {
	end := s.EndAt.Local().Format("Jan 2 15:04")
	if s.StartAt == nil {
		return fmt.Sprintf("%d posts, as far back as possible until %s", s.Count, end)
	}
	return fmt.Sprintf("%d posts, %s to %s", s.Count, s.StartAt.Local().Format("Jan 2 15:04"), end)
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(Tabs))
	for _, c := range Tabs {
		n := m.session.Count
		if c != domain.CategoryAll {
			n = m.counts[c]
		}
		label := fmt.Sprintf("%s %d", tabLabels[c], n)
		if c == m.sel.Category {
			parts = append(parts, common.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, common.TabInactiveStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}

func (m Model) authorHandle() string {
	if m.sel.AuthorID == "" {
		return ""
	}
	if a, ok := m.view.Authors[m.sel.AuthorID]; ok {
		return a.Acct
	}
	return ""
}

func (m Model) renderPosts(width int) string {
	if len(m.view.Posts) == 0 {
		return common.DimStyle.Render("  Nothing here.") + "\n"
	}

	var b strings.Builder
	end := min(m.offset+m.pageSize(), len(m.view.Posts))
	for i := m.offset; i < end; i++ {
		p := m.view.Posts[i]
		head, detail := m.renderPost(p)
		marker := "  "
		if i == m.cursor {
			marker = common.CursorStyle.Render("› ")
		}
		b.WriteString(common.Truncate(marker+head, width))
		b.WriteString("\n")
		b.WriteString(common.Truncate("  "+detail, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPost(p domain.Post) (string, string) {
	target := p.Target()
	who := lipgloss.NewStyle().Bold(true).Render("@" + target.Account.Acct)
	if p.Reblog != nil {
		who = common.DimStyle.Render("@"+p.Account.Acct+" ⇄ ") + who
	}

	text := common.OneLine(common.PlainText(target.Content))
	if target.SpoilerText != "" {
		text = "CW: " + common.OneLine(common.PlainText(target.SpoilerText))
	}
	if p.Filtered != nil && catchup.Classify(p, m.viewerID) == domain.CategoryFiltered {
		text = "Filtered: " + strings.Join(p.Filtered.Titles, ", ")
	}
	if text == "" {
		switch {
		case len(target.MediaAttachments) > 0:
			text = fmt.Sprintf("[%d media]", len(target.MediaAttachments))
		case target.Poll != nil:
			text = "[poll]"
		}
	}

	head := common.TimestampStyle.Render(p.CreatedAt.Local().Format("15:04")) + " " + who
	if m.sel.Category == domain.CategoryAll || m.sel.Category == "" {
		head += " " + common.BadgeStyle.Render(string(catchup.Classify(p, m.viewerID)))
	}
	head += " " + common.ContentStyle.Render(text)

	details := []string{
		fmt.Sprintf("↩ %d  ★ %d  ⇄ %d", target.RepliesCount, target.FavouritesCount, target.ReblogsCount),
	}
	if n := len(target.MediaAttachments); n > 0 {
		details = append(details, fmt.Sprintf("%d media", n))
	}
	if p.Thread {
		details = append(details, "thread")
	}
	if len(p.FollowedTags) > 0 {
		details = append(details, "#"+strings.Join(p.FollowedTags, " #"))
	}
	if boosters := m.view.Boosters[p.ID]; len(boosters) > 0 {
		names := make([]string, 0, len(boosters))
		for _, a := range boosters {
			names = append(names, "@"+a.Acct)
		}
		details = append(details, "also boosted by "+strings.Join(names, ", "))
	}
	return head, common.DimStyle.Render(strings.Join(details, " · "))
}

func (m Model) renderLinks(width int) string {
	if len(m.links) == 0 {
		return common.DimStyle.Render("  No links shared.") + "\n"
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("  Top links") + "\n")
	for i, l := range m.links {
		marker := "  "
		if i == m.linkCursor {
			marker = common.CursorStyle.Render("› ")
		}
		title := common.OneLine(common.PlainText(l.Card.Title))
		if title == "" {
			title = l.URL
		}
		b.WriteString(common.Truncate(fmt.Sprintf("%s%dx %s", marker, l.Shared, common.ContentStyle.Render(title)), width))
		b.WriteString("\n")
		sharers := make([]string, 0, len(l.Sharers))
		for _, a := range l.Sharers {
			sharers = append(sharers, "@"+a.Acct)
		}
		line := fmt.Sprintf("    %s · ★ %d ⇄ %d · %s", l.URL, l.Likes, l.Boosts, strings.Join(sharers, ", "))
		b.WriteString(common.Truncate(common.DimStyle.Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHints(width int) string {
	items := []string{"tab: filter", "s/S: sort/order", "g: group", "a/A: author", "L: links", "o: open", "esc: back", "?: all keys"}
	if m.showHints {
		items = []string{
			"j/k: move", "tab/shift+tab: filter", "s: sort key", "S: asc/desc",
			"g: group by author", "a: next author", "A: all authors",
			"L: top links", "o: open in browser", "esc: back", "q: quit",
		}
	}
	return common.StatusBarStyle.Width(max(width-2, 16)).Render("  " + strings.Join(items, " • "))
}
