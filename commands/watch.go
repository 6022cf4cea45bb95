package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/porjo/srdiff/internal/watch"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reprint a saved leaderboard whenever it changes",
	Long: `Prints the leaderboard with its Difference column, then prints it again
each time the file is written. Every change is a fresh load, so a replaced
table is located and augmented from scratch.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", outputTable,
		"Output format (table, json)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	color := term.IsTerminal(int(os.Stdout.Fd()))

	render := func() {
		l, err := load(ctx, path)
		if err != nil {
			// A half-written file is expected mid-save; the next write retries.
			slog.Error("reload leaderboard", "path", path, "err", err)
			return
		}
		if err := writeOutput(out, watchOutput, l, color); err != nil {
			slog.Error("print leaderboard", "err", err)
			return
		}
		fmt.Fprintln(out)
	}

	return follow(ctx, path, render)
}

// follow calls render once and again on every change to path until ctx is
// done. It subscribes before the first render so a write racing that render
// is printed again.
func follow(ctx context.Context, path string, render func()) error {
	sub, err := watch.Subscribe(path, render)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer sub.Close()

	render()

	<-ctx.Done()
	return nil
}
