package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"timetrack/internal/bootstrap"
	sessiondto "timetrack/internal/modules/session/dto"
	"timetrack/internal/platform/config"
	"timetrack/internal/platform/logging"
	reportview "timetrack/internal/ui/views/report"
	"timetrack/internal/ui/views/tracking"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, in io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	logging.Close()
	if err != nil {
		return handleError(stderr, err)
	}
	return 0
}

type rootOptions struct {
	dataDir    string
	configPath string
	verbose    bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "timetrack",
		Short:         "Track time spent on activities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor || os.Getenv("NO_COLOR") != "" {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", ".", "directory holding timetrack.db, timetrack.yml and .env")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/timetrack.yml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "plain output without colors")

	root.AddCommand(newStartCmd(opts))
	root.AddCommand(newStopCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newClearCmd(opts))
	return root
}

func loadApp(cmd *cobra.Command, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.dataDir, opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg, opts.verbose); err != nil {
		return nil, err
	}
	return bootstrap.New(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

func newStartCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		detach   bool
	)
	cmd := &cobra.Command{
		Use:   "start <activity>",
		Short: "Start tracking an activity and show the running time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			out, err := app.SessionCLI.Start(ctx, strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Started tracking: %s (%s)\n", out.Activity, out.Category)
			if detach {
				return nil
			}

			watch := func(ctx context.Context, sink func(sessiondto.ElapsedOutput)) {
				app.SessionCLI.Watch(ctx, out.StartedAt, sink)
			}
			if isTerminal(w) {
				model := tracking.New(out.Activity, out.Category, out.StartedAt)
				detached, err := tracking.Run(ctx, cmd.InOrStdin(), w, model, watch)
				if err != nil {
					return err
				}
				if detached {
					_, _ = fmt.Fprintf(w, "\nDisplay closed. %q is still being tracked; run 'timetrack stop' to save the session.\n", out.Activity)
					return nil
				}
			} else {
				_, _ = fmt.Fprintln(w, "Press Ctrl+C to stop the display")
				watch(ctx, tracking.LineSink(w))
			}
			_, _ = fmt.Fprintf(w, "\nDisplay stopped. %q is still being tracked; run 'timetrack stop' to save the session.\n", out.Activity)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category of the activity (default from config, usually work)")
	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "start without the live display")
	return cmd
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running activity and save its duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.SessionCLI.Stop(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking: %s (Duration: %d minutes)\n", out.Activity, out.DurationMin)
			return nil
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.SessionCLI.GetActive(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tracking: %s (%s) since %s, elapsed %s\n",
				out.Activity, out.Category, out.StartedAt.Format("2006-01-02 15:04:05"), out.Formatted)
			return nil
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		period   string
		category string
		format   string
		width    int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize tracked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if width <= 0 {
				width = fitBarWidth(cmd.OutOrStdout(), app.Config.BarWidth)
			}
			out, err := app.ReportCLI.Report(cmd.Context(), period, category, width)
			if err != nil {
				return err
			}
			return reportview.Render(cmd.OutOrStdout(), out, format)
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "today", "time period: today|week|month|all")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().StringVar(&format, "format", reportview.FormatTable, "output format: table|json|markdown")
	cmd.Flags().IntVar(&width, "width", 0, "bar chart width (default from config)")
	return cmd
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tracking data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.SessionCLI.Clear(cmd.Context(), force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d tracking records.\n", out.Deleted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

// barOverhead is the chart row space taken by the label, separator,
// duration and panel chrome.
const barOverhead = 20 + 3 + 10 + 8

// fitBarWidth shrinks the configured bar width so chart rows fit the
// terminal. Non-terminal output keeps the configured width.
func fitBarWidth(w io.Writer, configured int) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(w) {
		return configured
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols-barOverhead >= configured {
		return configured
	}
	return max(cols-barOverhead, 10)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
