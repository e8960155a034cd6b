package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/tui/common"
)

const excerptWidth = 100

func printSessionReport(w io.Writer, s domain.Session, viewerID string) {
	fmt.Fprintf(w, "Catch-up %s\n", s.ID)
	fmt.Fprintf(w, "  %s, %d posts\n", rangeText(s.StartAt, s.EndAt), s.Count)
	counts := catchup.CountCategories(s.Posts, viewerID)
	for _, c := range domain.Categories {
		if counts[c] > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", c, counts[c])
		}
	}
}

func printSummaries(w io.Writer, recent []domain.SessionSummary) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No catch-ups yet. Run 'terminalcatchup collect'.")
		return
	}
	for _, s := range recent {
		fmt.Fprintf(w, "%s  %s  %d posts\n", s.ID, rangeText(s.StartAt, s.EndAt), s.Count)
	}
}

func rangeText(startAt *time.Time, endAt time.Time) string {
	end := endAt.Local().Format("2006-01-02 15:04")
	if startAt == nil {
		return "everything until " + end
	}
	return startAt.Local().Format("2006-01-02 15:04") + " to " + end
}

func printView(w io.Writer, v catchup.View, sel catchup.Selection, viewerID string) {
	author := ""
	if a, ok := v.Authors[sel.AuthorID]; ok {
		author = a.Acct
	}
	fmt.Fprintln(w, catchup.Describe(sel, author))
	if len(v.Posts) == 0 {
		fmt.Fprintln(w, "Nothing here.")
		return
	}
	for i := range v.Posts {
		p := &v.Posts[i]
		fmt.Fprintln(w, postLine(p, catchup.Classify(*p, viewerID), v.Boosters[p.ID]))
	}
}

func postLine(p *domain.Post, cat domain.Category, others []domain.Author) string {
	t := p.Target()
	var b strings.Builder
	b.WriteString(p.CreatedAt.Local().Format("15:04"))
	b.WriteString("  @" + t.Account.Acct)
	if p.Reblog != nil {
		b.WriteString(" (boosted by @" + p.Account.Acct)
		for _, o := range others {
			b.WriteString(", @" + o.Acct)
		}
		b.WriteString(")")
	}
	b.WriteString("  [" + string(cat) + "]  ")

	text := common.OneLine(common.PlainText(t.Content))
	if p.Filtered != nil && p.Filtered.Action != domain.FilterNone {
		text = "filtered: " + strings.Join(p.Filtered.Titles, ", ")
	} else if t.SpoilerText != "" {
		text = "CW: " + common.OneLine(t.SpoilerText)
	}
	b.WriteString(common.Truncate(text, excerptWidth))
	return b.String()
}

func printLinks(w io.Writer, links []domain.LinkAggregate) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No links shared.")
		return
	}
	for _, l := range links {
		title := l.Card.Title
		if title == "" {
			title = l.URL
		}
		fmt.Fprintf(w, "%s\n  %s\n  shared %d times, %d likes, %d boosts\n",
			common.Truncate(common.OneLine(title), excerptWidth), l.URL, l.Shared, l.Likes, l.Boosts)
	}
}
