package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name          string
		v, c, d       string
		moduleVersion string
		settings      map[string]string
		want          [3]string
	}{
		{
			name: "ldflags win",
			v:    "v1.2.0", c: "abc", d: "2026-01-01",
			moduleVersion: "v9.9.9",
			settings:      map[string]string{"vcs.revision": "ffff", "vcs.time": "x"},
			want:          [3]string{"v1.2.0", "abc", "2026-01-01"},
		},
		{
			name: "build info fills defaults",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "v0.3.0",
			settings:      map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-10-01T10:00:00Z"},
			want:          [3]string{"v0.3.0", "0123456789ab", "2026-10-01T10:00:00Z"},
		},
		{
			name: "devel module version ignored",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "(devel)",
			want:          [3]string{"dev", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.v, tc.c, tc.d, tc.moduleVersion, tc.settings)
			if got := [3]string{v, c, d}; got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestCollectRange(t *testing.T) {
	tests := []struct {
		name      string
		hours     int
		all       bool
		sinceLast bool
		preset    int
		since     bool
		wantErr   bool
	}{
		{name: "hours", hours: 3, preset: 3},
		{name: "all", hours: 1, all: true, preset: catchup.BeyondRange},
		{name: "since last", hours: 1, sinceLast: true, preset: catchup.BeyondRange, since: true},
		{name: "both", all: true, sinceLast: true, wantErr: true},
		{name: "zero hours", hours: 0, wantErr: true},
		{name: "too many hours", hours: 13, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			preset, since, err := collectRange(tc.hours, tc.all, tc.sinceLast)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if preset != tc.preset || since != tc.since {
				t.Fatalf("got (%d, %v) want (%d, %v)", preset, since, tc.preset, tc.since)
			}
		})
	}
}

func TestShowFlags_Selection(t *testing.T) {
	sel, err := showFlags{filter: "boosts", sort: "density", order: "desc", group: true}.selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if sel.Category != domain.CategoryBoosts || sel.SortBy != catchup.SortDensity ||
		sel.SortOrder != catchup.Desc || sel.GroupBy != catchup.GroupAccount {
		t.Fatalf("unexpected selection: %+v", sel)
	}

	if _, err := (showFlags{filter: "all", sort: "likes", order: "asc"}).selection(); !errors.Is(err, domain.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestRootCmd_RejectsBadArgsBeforeWiring(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "show without id", args: []string{"show"}, want: "accepts 1 arg"},
		{name: "delete extra args", args: []string{"delete", "a", "b"}, want: "accepts 1 arg"},
		{name: "unknown flag", args: []string{"list", "--bogus"}, want: "unknown flag"},
		{name: "exclusive flags", args: []string{"collect", "--all", "--since-last"}, want: "all"},
		{name: "bad hours", args: []string{"collect", "--hours", "20"}, want: "between 1 and 12"},
		{name: "bad sort", args: []string{"show", "x", "--sort", "nope"}, want: "invalid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tc.args)
			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "TerminalCatchup ") || !strings.Contains(out.String(), "commit: ") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestPrintView_ShowsBoostersAndFilteredTitles(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	alice := domain.Author{ID: "1", Acct: "alice"}
	bob := domain.Author{ID: "2", Acct: "bob"}
	carol := domain.Author{ID: "3", Acct: "carol"}
	original := domain.Post{ID: "o1", Account: carol, CreatedAt: at, Content: "<p>hello <b>world</b></p>"}
	boost := domain.Post{ID: "b1", Account: alice, CreatedAt: at, Reblog: &original}
	hidden := domain.Post{
		ID: "h1", Account: bob, CreatedAt: at.Add(time.Minute), Content: "<p>spoilers</p>",
		Filtered: &domain.FilterVerdict{Action: domain.FilterWarn, Titles: []string{"Show"}},
	}
	view := catchup.View{
		Posts:    []domain.Post{boost, hidden},
		Boosters: map[string][]domain.Author{"b1": {bob}},
	}

	var out bytes.Buffer
	printView(&out, view, catchup.DefaultSelection(), "99")
	got := out.String()
	for _, want := range []string{
		"@carol (boosted by @alice, @bob)",
		"hello world",
		"[filtered]  filtered: Show",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSummaries(t *testing.T) {
	var out bytes.Buffer
	printSummaries(&out, nil)
	if !strings.Contains(out.String(), "No catch-ups yet") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	end := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	printSummaries(&out, []domain.SessionSummary{{ID: "ns-1", Count: 7, EndAt: end}})
	if !strings.Contains(out.String(), "ns-1") || !strings.Contains(out.String(), "everything until") ||
		!strings.Contains(out.String(), "7 posts") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
