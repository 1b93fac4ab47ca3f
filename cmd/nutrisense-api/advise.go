package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Print ranked advice for a user",
	Long:  `Run the full advice pipeline for a user at a point in time and print the result as JSON.`,
	RunE:  runAdvise,
}

var (
	adviseUser  string
	adviseAt    string
	adviseLimit int
)

func init() {
	adviseCmd.Flags().StringVarP(&adviseUser, "user", "u", "", "User id (required)")
	adviseCmd.Flags().StringVar(&adviseAt, "at", "", "Evaluation time, RFC3339 (default now)")
	adviseCmd.Flags().IntVarP(&adviseLimit, "limit", "n", 0, "Maximum number of advice items (default from engine config)")
	_ = adviseCmd.MarkFlagRequired("user")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	at := time.Now()
	if adviseAt != "" {
		at, err = time.Parse(time.RFC3339, adviseAt)
		if err != nil {
			return fmt.Errorf("invalid --at %q: expected RFC3339", adviseAt)
		}
	}
	if adviseLimit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.advice.GetAdvice(cmd.Context(), adviseUser, at, adviseLimit)
	if err != nil {
		return fmt.Errorf("failed to generate advice: %w", err)
	}
	return printJSON(cmd, resp)
}
