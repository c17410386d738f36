package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/upload"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the scoring service is reachable",
	Long:  "Call GET on the scoring service root and print the status it reports.",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireBaseURL(cfg); err != nil {
		return err
	}

	client := upload.NewClient(cfg.BaseURL, &upload.Options{Timeout: cfg.RequestTimeout})
	status, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("scoring service is not healthy: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scoring service at %s: %s (HTTP %d)\n", client.BaseURL(), status.Status, status.StatusCode)
	return nil
}
