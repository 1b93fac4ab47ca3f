package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the analysis report for a user",
	Long:  `Run the statistics engine over a user's recent history and print the report as JSON.`,
	RunE:  runAnalyze,
}

var (
	analyzeUser  string
	analyzeDays  int
	analyzeUntil string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "User id (required)")
	analyzeCmd.Flags().IntVarP(&analyzeDays, "days", "d", 0, "History window in days (default from engine config)")
	analyzeCmd.Flags().StringVar(&analyzeUntil, "until", "", "Last day of the window, YYYY-MM-DD (default today)")
	_ = analyzeCmd.MarkFlagRequired("user")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	until := time.Now()
	if analyzeUntil != "" {
		until, err = time.ParseInLocation(models.DateLayout, analyzeUntil, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --until %q: expected YYYY-MM-DD", analyzeUntil)
		}
	}

	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.analysis.Analyze(cmd.Context(), analyzeUser, analyzeDays, until)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}
	return printJSON(cmd, report)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
