package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/duelboard/internal/seeder"
	"github.com/okian/duelboard/pkg/logger"
)

var (
	baseURL  string
	timeout  time.Duration
	logLevel string

	runCfg = seeder.NewConfig()

	showMode  string
	showLimit int
)

var rootCmd = &cobra.Command{
	Use:   "seed-games",
	Short: "Seed and inspect a running duelboard service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.WithWriter(os.Stderr), logger.WithLevel(logLevel))
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit random games and verify the leaderboard",
	Long: `Generates random 1P and 2P games, submits them concurrently, then checks
that the leaderboard is ordered and total_games grew by the number of
accepted submissions.`,
	Example: `  seed-games run --games 500 --workers 16
  seed-games run --invalid-ratio 0.1 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCfg.BaseURL = baseURL
		runCfg.Timeout = timeout
		_, err := seeder.Run(cmd.Context(), runCfg, cmd.OutOrStdout())
		return err
	},
}

var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the leaderboard and stats",
	Aliases: []string{"lb", "top"},
	Example: `  seed-games show --mode 2P --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return seeder.Show(cmd.Context(), baseURL, timeout, showMode, showLimit, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&baseURL, "url", "u", seeder.DefaultBaseURL, "Base URL of the service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", seeder.DefaultTimeout, "HTTP request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	runCmd.Flags().IntVarP(&runCfg.NumGames, "games", "n", seeder.DefaultNumGames, "Number of games to submit")
	runCmd.Flags().IntVarP(&runCfg.Workers, "workers", "w", seeder.DefaultWorkers, "Number of concurrent workers")
	runCmd.Flags().IntVar(&runCfg.TopN, "top", seeder.DefaultTopN, "Leaderboard entries to fetch and verify")
	runCmd.Flags().Float64Var(&runCfg.TwoPlayerRatio, "two-player-ratio", seeder.DefaultTwoPlayerRatio, "Share of 2P games")
	runCmd.Flags().Float64Var(&runCfg.InvalidRatio, "invalid-ratio", 0, "Share of deliberately invalid games")
	runCmd.Flags().Uint64Var(&runCfg.Seed, "seed", 0, "Random seed (0 for random)")
	runCmd.Flags().BoolVarP(&runCfg.Verbose, "verbose", "v", false, "Log every failed submission")

	showCmd.Flags().StringVarP(&showMode, "mode", "m", "all", "Mode filter: 1P, 2P or all")
	showCmd.Flags().IntVarP(&showLimit, "limit", "l", seeder.DefaultTopN, "Number of entries")

	rootCmd.AddCommand(runCmd, showCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
