package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "learnlab",
	Short: "AI study companion for the terminal",
	Long:  "LearnLab: a terminal client that builds day-by-day study plans, explains topics, answers doubts and quizzes you, backed by the LearnLab AI service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: ./learnlab.yaml or $XDG_CONFIG_HOME/learnlab/learnlab.yaml)")
	pf.String("env-file", ".env", "Path to .env file")
	pf.String("backend", "", "Backend base URL (overrides LEARNLAB_BACKEND_URL)")
	pf.Duration("timeout", 0, "Per-request timeout, 0 disables it (overrides LEARNLAB_BACKEND_TIMEOUT)")
	pf.String("db", "", "Path to SQLite call log (overrides LEARNLAB_DB env var)")
	pf.Bool("no-store", false, "Do not record backend calls")
	pf.String("log-file", "", "Path to log file (overrides LEARNLAB_LOG_FILE)")
	pf.String("env", "", "Environment: local, dev or production")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.Info("starting learnlab",
		zap.String("version", version),
		zap.String("backend", rt.cfg.Backend.URL),
		zap.Bool("call_log", rt.store != nil),
	)

	return app.Run(cmd.Context(), app.Options{
		Gateway:      rt.gateway(),
		Calls:        rt.calls(),
		Logger:       rt.log,
		NumQuestions: rt.cfg.Quiz.NumQuestions,
	})
}
