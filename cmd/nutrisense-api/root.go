package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/nutrisense/backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "nutrisense-api",
	Short: "NutriSense API server",
	Long:  `A REST API server and CLI for the NutriSense contextual nutrition advice engine.`,
}

var configFile string

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(adviseCmd)
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}
