package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/domain"
	"github.com/CrestNiraj12/terminalcatchup/infra/config"
	"github.com/CrestNiraj12/terminalcatchup/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func versionString() string {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	return fmt.Sprintf("TerminalCatchup %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command. Without a subcommand it opens the TUI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "terminalcatchup",
		Short: "Catch up on your Mastodon home timeline",
		Long: "TerminalCatchup reads your home timeline back over a time range, " +
			"classifies what it finds and keeps the last few catch-ups for browsing.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}

	rootCmd.AddCommand(newCollectCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newLinksCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "terminalcatchup: %v\n", err)
	}
	return err
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	state, err := config.LoadViewState(cfg.UIStatePath)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable view state")
	}

	rootModel := tui.NewApp(tui.Deps{
		Catchups: e.Service,
		Handle:   e.Profile.Username,
		State:    state,
		SaveState: func(st config.ViewState) error {
			return config.SaveViewState(cfg.UIStatePath, st)
		},
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// withCLI loads config, logs to stderr and wires the engine for a subcommand.
func withCLI(cmd *cobra.Command, run func(ctx context.Context, e *env) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.Close()
	return run(ctx, e)
}

// collectRange turns the collect flags into a range preset.
func collectRange(hours int, all, sinceLast bool) (int, bool, error) {
	if all && sinceLast {
		return 0, false, fmt.Errorf("%w: --all and --since-last are exclusive", domain.ErrInvalidRange)
	}
	if all || sinceLast {
		return catchup.BeyondRange, sinceLast, nil
	}
	if hours < catchup.MinRangeHours || hours > catchup.MaxRangeHours {
		return 0, false, fmt.Errorf("%w: --hours must be between %d and %d", domain.ErrInvalidRange,
			catchup.MinRangeHours, catchup.MaxRangeHours)
	}
	return hours, false, nil
}

func newCollectCmd() *cobra.Command {
	var hours int
	var all, sinceLast bool

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run a catch-up and save it",
		Long: "Read the home timeline back over the given range, classify the posts " +
			"and store the result. Ctrl+C cancels without saving.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, since, err := collectRange(hours, all, sinceLast)
			if err != nil {
				return err
			}
			return withCLI(cmd, func(ctx context.Context, e *env) error {
				last, err := e.Service.LastEndAt(ctx)
				if err != nil {
					return err
				}
				now := e.Service.Now()
				if !since && preset < catchup.BeyondRange && catchup.OverlapsLast(preset, last, now) {
					fmt.Fprintln(cmd.ErrOrStderr(), "note: this range overlaps with your last catch-up")
				}
				duration, err := catchup.RangeDuration(preset, since, last, now)
				if err != nil {
					return err
				}

				session, err := e.Service.StartCollection(ctx, duration)
				if session.ID == "" {
					return err
				}
				printSessionReport(cmd.OutOrStdout(), session, e.Service.ViewerID())
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&hours, "hours", "H", catchup.MinRangeHours, "Hours to reach back (1-12)")
	cmd.Flags().BoolVar(&all, "all", false, "Reach back as far as the server allows")
	cmd.Flags().BoolVar(&sinceLast, "since-last", false, "Reach back to the end of the last catch-up")
	cmd.MarkFlagsMutuallyExclusive("all", "since-last")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored catch-ups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(ctx context.Context, e *env) error {
				recent, err := e.Service.Recent(ctx)
				if err != nil {
					return err
				}
				printSummaries(cmd.OutOrStdout(), recent)
				return nil
			})
		},
	}
}

// showFlags are the view flags of the show command.
type showFlags struct {
	filter string
	author string
	sort   string
	order  string
	group  bool
}

func (f showFlags) selection() (catchup.Selection, error) {
	sel := catchup.Selection{
		Category:  domain.Category(f.filter),
		AuthorID:  f.author,
		SortBy:    catchup.SortKey(f.sort),
		SortOrder: catchup.SortOrder(f.order),
	}
	if f.group {
		sel.GroupBy = catchup.GroupAccount
	}
	if err := sel.Validate(); err != nil {
		return catchup.Selection{}, err
	}
	return sel, nil
}

func newShowCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the posts of a stored catch-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := flags.selection()
			if err != nil {
				return err
			}
			return withCLI(cmd, func(ctx context.Context, e *env) error {
				session, err := e.Service.Open(ctx, args[0])
				if err != nil {
					return err
				}
				view := catchup.Project(session, sel, e.Service.ViewerID())
				printView(cmd.OutOrStdout(), view, sel, e.Service.ViewerID())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.filter, "filter", "f", string(domain.CategoryAll),
		"Category: all, original, replies, boosts, followedTags, groups, filtered")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "Only posts by this account ID")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", string(catchup.SortCreatedAt),
		"Sort: createdAt, repliesCount, favouritesCount, reblogsCount, density")
	cmd.Flags().StringVarP(&flags.order, "order", "o", string(catchup.Asc), "Order: asc or desc")
	cmd.Flags().BoolVarP(&flags.group, "group", "g", false, "Group posts by author")

	return cmd
}

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <id>",
		Short: "Print the links most shared in a stored catch-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(ctx context.Context, e *env) error {
				session, err := e.Service.Open(ctx, args[0])
				if err != nil {
					return err
				}
				printLinks(cmd.OutOrStdout(), catchup.AggregateLinks(session.Posts, e.Service.ViewerID()))
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored catch-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(ctx context.Context, e *env) error {
				if err := e.Service.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}
}
