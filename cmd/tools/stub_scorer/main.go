// Command stub_scorer is a local stand-in for the resume scoring service. It accepts the same
// multipart upload and answers with a keyword-overlap score per resume, or with a fixed
// response loaded from a fixture file.
//
// Usage:
//
//	go run ./cmd/tools/stub_scorer --port 5000
//	go run ./cmd/tools/stub_scorer --fixture testdata/response.json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

var (
	port        int
	fixturePath string
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:          "stub_scorer",
	Short:        "Serve a fake resume scoring service",
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		var fixture []byte
		if fixturePath != "" {
			data, err := os.ReadFile(fixturePath)
			if err != nil {
				return fmt.Errorf("failed to read fixture: %w", err)
			}
			if err := schemas.ValidateScoringResponse(data); err != nil {
				return fmt.Errorf("fixture %s is not a valid scoring response: %w", fixturePath, err)
			}
			fixture = data
		}

		var requestLog io.Writer = os.Stdout
		if quiet {
			requestLog = nil
		}
		return newApp(fixture, requestLog).Listen(fmt.Sprintf(":%d", port))
	},
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 5000, "Port to listen on")
	rootCmd.Flags().StringVar(&fixturePath, "fixture", "", "Serve this JSON document for every upload")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Disable request logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
