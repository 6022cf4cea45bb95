package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/porjo/srdiff/internal/tui"
)

var (
	showBaseline int
	showOutput   string
	showPlain    bool
)

var showCmd = &cobra.Command{
	Use:   "show <file|url>",
	Short: "Show a leaderboard with its Difference column",
	Long: `Loads a saved leaderboard page or fetches one from speedrun.com and adds the
Difference column.

On a terminal the leaderboard opens in an interactive viewer where the
highlighted run is the baseline. Otherwise, or with --plain, the table is
printed once.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showBaseline, "baseline", "b", -1,
		"Data row to compare against, 0 is the first run (default: user's run or first run)")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", outputTable,
		"Output format (table, json)")
	showCmd.Flags().BoolVar(&showPlain, "plain", false,
		"Print the table instead of opening the viewer")
}

func runShow(cmd *cobra.Command, args []string) error {
	l, err := load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if showBaseline >= 0 {
		if err := l.board.Activate(showBaseline); err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if showPlain || showOutput != outputTable || !tty {
		return writeOutput(cmd.OutOrStdout(), showOutput, l, tty)
	}

	title := strings.TrimSpace(l.doc.Title())
	if title == "" {
		title = args[0]
	}

	return tui.Run(tui.New(title, l.board, l.grid))
}
