package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"peer-review-service/internal/config"
	"peer-review-service/internal/domain"
	"peer-review-service/internal/usecase"
	"peer-review-service/internal/wiki"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	startDate   string
	wikiUser    string
	asJSON      bool
	concurrency int
	keepGoing   bool
)

var rootCmd = &cobra.Command{
	Use:   "wikireview <assignment-url>",
	Short: "wikireview prints revision history lines collected from a DokuWiki namespace.",
	Args:  cobra.ExactArgs(1),
	RunE:  run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&startDate, "start-date", "", "Drop revisions made before this date (e.g. 2024-01-31 or 2024/01/31 12:00).")
	rootCmd.Flags().StringVar(&wikiUser, "user", "", "Keep only revisions whose line contains this wiki user name.")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result with per-page diagnostics as JSON.")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Override WIKI_MAX_CONCURRENCY.")
	rootCmd.Flags().BoolVar(&keepGoing, "continue-on-error", false, "Report failed pages instead of aborting.")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := config.LoadConfig()
	logger := config.NewLogger(cfg.LogLevel)
	logger.SetOutput(cmd.ErrOrStderr())
	if cfgErr != nil {
		logger.Debugf(".env not found: %v", cfgErr)
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Wiki.MaxConcurrency = concurrency
	}
	if keepGoing {
		cfg.Wiki.ContinueOnPageError = true
	}

	uc := usecase.NewWikiReviewUseCase(wiki.NewFromConfig(cfg.Wiki, logger))

	review, err := uc.ReviewDokuWiki(cmd.Context(), domain.ReviewQuery{
		AssignmentURL: args[0],
		StartDate:     startDate,
		WikiUser:      wikiUser,
	})
	if err != nil {
		return err
	}

	if review.DegradedPages > 0 {
		logger.WithField("degraded_pages", review.DegradedPages).Warn("Some pages were only partially parsed")
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(review)
	}
	for _, item := range review.Items {
		fmt.Fprintln(out, item)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logrus.WithError(err).Error("wikireview failed")
		os.Exit(1)
	}
}
