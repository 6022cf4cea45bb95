package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/porjo/srdiff/internal/page"
	"github.com/porjo/srdiff/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve augmented leaderboards over HTTP",
	Long: `Serves three endpoints, each taking link=<leaderboard url>, and optionally
baseline=<row> and user=<player>:

  /diff       the leaderboard page with the Difference column added
  /diff.json  the augmented table as JSON
  /feed       the runs as an RSS feed`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080,
		"Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := server.New(page.NewFetcher(fetchTimeout))
	return s.Run(ctx, fmt.Sprintf(":%d", servePort))
}
