package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/porjo/srdiff/internal/leaderboard"
	"github.com/porjo/srdiff/internal/page"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Leaderboard related
	userName     string
	fetchTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:   "srdiff",
		Short: "Add a time difference column to speedrun.com leaderboards",
		Long: `srdiff finds the time column of a speedrun.com leaderboard and adds a
"Difference" column showing how far each run is from a baseline run.

The baseline is the logged-in user's run when the page has one, otherwise
the first run.

Examples:
  srdiff show https://www.speedrun.com/celeste     # Browse the leaderboard in the terminal
  srdiff show saved.html --plain --baseline 3      # Print differences against the 4th run
  srdiff show saved.html --output json             # Print the augmented table as JSON
  srdiff watch saved.html                          # Reprint whenever the file changes
  srdiff serve --port 8080                         # Serve /diff, /diff.json and /feed`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(debug, logFile)
		},
	}
)

func init() {
	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to file instead of stderr")

	// Leaderboard
	rootCmd.PersistentFlags().StringVar(&userName, "user", "",
		"Player whose run is the initial baseline (default: the page's logged-in user)")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", page.DefaultTimeout,
		"Timeout for fetching a leaderboard page")
}

func Execute() error {
	return rootCmd.Execute()
}

var logCloser io.Closer

func setupLogging(debug bool, filename string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		logCloser = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// Close releases the log file, if any.
func Close() {
	if logCloser != nil {
		logCloser.Close()
	}
}

// loaded is a leaderboard read from disk or the network. The CLI works on a
// copy of the table so the viewer can redraw it directly.
type loaded struct {
	doc   *page.Document
	grid  *leaderboard.Grid
	board *leaderboard.Board
}

// load reads source as a local file when one exists, otherwise fetches it.
func load(ctx context.Context, source string) (*loaded, error) {
	var (
		doc *page.Document
		err error
	)

	if f, openErr := os.Open(source); openErr == nil {
		doc, err = page.Load(f)
		f.Close()
	} else {
		doc, err = page.NewFetcher(fetchTimeout).Fetch(ctx, source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	table, err := doc.Leaderboard()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	user := userName
	if user == "" {
		user = doc.UserName()
	}

	grid := table.Grid()
	board, err := leaderboard.Attach(grid, user)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	slog.Debug("leaderboard loaded", "source", source, "user", user, "baseline", board.Baseline())

	return &loaded{doc: doc, grid: grid, board: board}, nil
}
