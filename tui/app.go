package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/infra/config"
	"github.com/CrestNiraj12/terminalcatchup/tui/common"
	"github.com/CrestNiraj12/terminalcatchup/tui/results"
)

// Catchups is what the TUI needs from the engine.
type Catchups interface {
	ViewerID() string
	StartCollection(ctx context.Context, duration *time.Duration) (domain.Session, error)
	Open(ctx context.Context, id string) (domain.Session, error)
	Recent(ctx context.Context) ([]domain.SessionSummary, error)
	Delete(ctx context.Context, id string) error
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Catchups  Catchups
	Handle    string // viewer's handle for the title
	State     config.ViewState
	SaveState func(config.ViewState) error
	Now       func() time.Time
}

type screen int

const (
	startScreen screen = iota
	loadingScreen
	resultsScreen
)

// --- Messages ---

type recentLoadedMsg struct {
	Recent []domain.SessionSummary
	Err    error
}

type collectedMsg struct {
	Session domain.Session
	Err     error
}

type openedMsg struct {
	Session domain.Session
	Err     error
}

type deletedMsg struct {
	ID  string
	Err error
}

// App is the root Bubble Tea model: start screen, running catch-up, results.
type App struct {
	deps    Deps
	screen  screen
	keys    common.KeyMap
	spinner spinner.Model

	hours     int
	sinceLast bool
	recent    []domain.SessionSummary
	cursor    int // 0 is the start row, 1.. are recent catch-ups
	confirm   bool

	cancel  context.CancelFunc
	results results.Model

	width     int
	height    int
	status    string
	statusErr bool
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	hours := deps.State.Hours
	if hours < catchup.MinRangeHours || hours > catchup.BeyondRange {
		hours = catchup.MinRangeHours
	}
	return App{
		deps:      deps,
		screen:    startScreen,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		hours:     hours,
		sinceLast: deps.State.SinceLast,
		width:     80,
		height:    24,
	}
}

// Init loads the recent catch-ups.
func (a App) Init() tea.Cmd {
	return a.loadRecent()
}

func (a App) loadRecent() tea.Cmd {
	return func() tea.Msg {
		recent, err := a.deps.Catchups.Recent(context.Background())
		return recentLoadedMsg{Recent: recent, Err: err}
	}
}

// Update handles messages and routes to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.results = a.results.SetSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.screen != loadingScreen {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case recentLoadedMsg:
		if msg.Err != nil {
			a.setStatus("Error loading catch-ups: "+msg.Err.Error(), true)
			return a, nil
		}
		a.recent = msg.Recent
		a.cursor = min(a.cursor, len(a.recent))
		return a, nil

	case collectedMsg:
		a.stopRun()
		if errors.Is(msg.Err, context.Canceled) {
			a.screen = startScreen
			a.setStatus("Cancelled.", false)
			return a, nil
		}
		if msg.Err != nil && msg.Session.ID == "" {
			a.screen = startScreen
			a.setStatus("Error: "+msg.Err.Error(), true)
			return a, nil
		}
		if msg.Err != nil {
			a.setStatus("Catch-up not saved: "+msg.Err.Error(), true)
		} else {
			a.setStatus(fmt.Sprintf("Caught up on %d posts.", msg.Session.Count), false)
		}
		a.openResults(msg.Session)
		return a, a.loadRecent()

	case openedMsg:
		if msg.Err != nil {
			a.screen = startScreen
			a.setStatus("Error: "+msg.Err.Error(), true)
			return a, nil
		}
		a.setStatus("", false)
		a.openResults(msg.Session)
		return a, nil

	case deletedMsg:
		if msg.Err != nil {
			a.setStatus("Error deleting: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Catch-up deleted.", false)
		}
		return a, a.loadRecent()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.stopRun()
			a.persistState()
			return a, tea.Quit
		}
		switch a.screen {
		case loadingScreen:
			if key.Matches(msg, a.keys.Back) {
				a.stopRun()
			}
			return a, nil
		case resultsScreen:
			if key.Matches(msg, a.keys.Back) && !a.results.ShowingLinks() {
				a.persistState()
				a.screen = startScreen
				a.setStatus("", false)
				return a, a.loadRecent()
			}
			if key.Matches(msg, a.keys.Quit) {
				a.persistState()
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.results, cmd = a.results.Update(msg)
			return a, cmd
		default:
			return a.updateStart(msg)
		}
	}
	return a, nil
}

func (a App) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirm {
		a.confirm = false
		if key.Matches(msg, a.keys.Confirm) && a.cursor > 0 {
			id := a.recent[a.cursor-1].ID
			return a, func() tea.Msg {
				return deletedMsg{ID: id, Err: a.deps.Catchups.Delete(context.Background(), id)}
			}
		}
		a.setStatus("", false)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.persistState()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.recent) {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Less):
		if a.cursor == 0 && a.hours > catchup.MinRangeHours {
			a.hours--
		}
	case key.Matches(msg, a.keys.More):
		if a.cursor == 0 && a.hours < catchup.BeyondRange {
			a.hours++
		}
	case key.Matches(msg, a.keys.SinceLast):
		a.sinceLast = !a.sinceLast
	case key.Matches(msg, a.keys.Delete):
		if a.cursor > 0 {
			a.confirm = true
		}
	case key.Matches(msg, a.keys.Start):
		if a.cursor > 0 {
			return a, a.open(a.recent[a.cursor-1].ID)
		}
		return a.start()
	}
	return a, nil
}

func (a App) start() (tea.Model, tea.Cmd) {
	hours := a.hours
	if a.sinceLast {
		hours = catchup.BeyondRange
	}
	duration, err := catchup.RangeDuration(hours, a.sinceLast, a.lastEndAt(), a.deps.Now())
	if err != nil {
		a.setStatus("Error: "+err.Error(), true)
		return a, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.screen = loadingScreen
	a.setStatus("", false)
	a.persistState()

	svc := a.deps.Catchups
	return a, tea.Batch(
		a.spinner.Tick,
		func() tea.Msg {
			session, err := svc.StartCollection(ctx, duration)
			return collectedMsg{Session: session, Err: err}
		},
	)
}

func (a App) open(id string) tea.Cmd {
	svc := a.deps.Catchups
	return func() tea.Msg {
		session, err := svc.Open(context.Background(), id)
		return openedMsg{Session: session, Err: err}
	}
}

func (a *App) openResults(session domain.Session) {
	sel := catchup.DefaultSelection()
	if a.screen == resultsScreen {
		sel = a.results.Selection()
	} else if st := a.deps.State; st.SortBy != "" {
		sel = catchup.Selection{
			Category:  domain.Category(st.Category),
			SortBy:    catchup.SortKey(st.SortBy),
			SortOrder: catchup.SortOrder(st.SortOrder),
			GroupBy:   catchup.GroupBy(st.GroupBy),
		}
	}
	a.results = results.New(session, a.deps.Catchups.ViewerID(), sel).
		WithClock(a.deps.Now).
		SetSize(a.width, a.height)
	a.screen = resultsScreen
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status, a.statusErr = msg, isErr
}

func (a *App) stopRun() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *App) lastEndAt() *time.Time {
	if len(a.recent) == 0 {
		return nil
	}
	t := a.recent[0].EndAt
	return &t
}

// persistState remembers the range and the last selection for the next run.
func (a *App) persistState() {
	st := config.ViewState{Hours: a.hours, SinceLast: a.sinceLast}
	if a.results.Session().ID != "" {
		sel := a.results.Selection()
		st.Category = string(sel.Category)
		st.SortBy = string(sel.SortBy)
		st.SortOrder = string(sel.SortOrder)
		st.GroupBy = string(sel.GroupBy)
	} else {
		st.Category = a.deps.State.Category
		st.SortBy = a.deps.State.SortBy
		st.SortOrder = a.deps.State.SortOrder
		st.GroupBy = a.deps.State.GroupBy
	}
	a.deps.State = st
	if a.deps.SaveState == nil {
		return
	}
	if err := a.deps.SaveState(st); err != nil {
		log.Warn().Err(err).Msg("saving view state")
	}
}

// View renders the active screen.
func (a App) View() string {
	var s string
	switch a.screen {
	case loadingScreen:
		s = a.loadingView()
	case resultsScreen:
		s = a.results.View()
	default:
		s = a.startView()
	}
	switch {
	case a.status == "":
	case a.statusErr:
		s += "\n" + common.ErrorStyle.Render(a.status)
	default:
		s += "\n" + common.SuccessStyle.Render(a.status)
	}
	return s
}

func (a App) loadingView() string {
	return common.AppTitleStyle.Render("Catch-up") + "\n\n  " +
		a.spinner.View() + " Catching up" + a.rangeText() + "…\n\n" +
		common.StatusBarStyle.Render("  esc: cancel")
}

func (a App) rangeText() string {
	if a.sinceLast && a.lastEndAt() != nil {
		return " since your last catch-up"
	}
	if a.hours >= catchup.BeyondRange {
		return " as far back as possible"
	}
	return " on the " + catchup.RangeLabel(a.hours)
}

func (a App) startView() string {
	var b strings.Builder
	title := "Catch-up"
	if a.deps.Handle != "" {
		title += " for @" + a.deps.Handle
	}
	b.WriteString(common.AppTitleStyle.Render(title))
	b.WriteString(common.TaglineStyle.Render("what happened while you were away"))
	b.WriteString("\n\n")

	marker := "  "
	if a.cursor == 0 {
		marker = common.CursorStyle.Render("› ")
	}
	b.WriteString(marker + "Catch up on " + renderSlider(a.hours) + " " + catchup.RangeLabel(a.hours) + "\n")

	last := a.lastEndAt()
	since := "  [ ] since last catch-up"
	if a.sinceLast {
		since = "  [x] since last catch-up"
	}
	if last != nil {
		since += common.DimStyle.Render(" (ended " + last.Local().Format("Jan 2 15:04") + ")")
	}
	b.WriteString(since + "\n")

	if !a.sinceLast && a.hours < catchup.BeyondRange && catchup.OverlapsLast(a.hours, last, a.deps.Now()) {
		b.WriteString(common.WarningStyle.Render("  This range overlaps with your last catch-up.") + "\n")
	}

	if len(a.recent) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("  Recent") + "\n")
		for i, r := range a.recent {
			marker := "  "
			if a.cursor == i+1 {
				marker = common.CursorStyle.Render("› ")
			}
			b.WriteString(marker + summaryLine(r) + "\n")
		}
	}
	if a.confirm {
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this catch-up? y/n") + "\n")
	}

	hints := []string{"←/→: range", "t: since last", "enter: start/open", "d: delete", "q: quit"}
	b.WriteString(common.StatusBarStyle.Render("  " + strings.Join(hints, " • ")))
	return b.String()
}

func renderSlider(hours int) string {
	filled := strings.Repeat("━", hours)
	rest := strings.Repeat("─", catchup.BeyondRange-hours)
	return common.CursorStyle.Render(filled) + common.DimStyle.Render(rest)
}

func summaryLine(s domain.SessionSummary) string {
	end := s.EndAt.Local().Format("Jan 2 15:04")
	if s.StartAt == nil {
		return fmt.Sprintf("%s · %d posts · everything", end, s.Count)
	}
	return fmt.Sprintf("%s · %d posts · %s", end, s.Count, shortDuration(s.EndAt.Sub(*s.StartAt)))
}

func shortDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	h := int(d.Hours())
	if m := int(d.Minutes()) % 60; m > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
