package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/render"
	"github.com/jonathan/resume-matcher/internal/upload"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Score resumes against a job description",
	Long: "Send a job description and one or more resume files to the scoring service in a single " +
		"upload and print the processing time, the top resume and every result in received order.",
	RunE: runSubmit,
}

var (
	submitJob     string
	submitJobFile string
	submitResumes []string
	submitOutput  string
	submitTimeout time.Duration
)

// flushable is a display that prints what it collected.
type flushable interface {
	upload.Display
	Flush() error
}

func init() {
	submitCmd.Flags().StringVar(&submitJob, "job", "", "Job description text")
	submitCmd.Flags().StringVar(&submitJobFile, "job-file", "", "Path to a file containing the job description")
	submitCmd.Flags().StringArrayVarP(&submitResumes, "resume", "r", nil, "Resume file path or glob (repeatable, order is kept)")
	submitCmd.Flags().StringVarP(&submitOutput, "output", "o", "text", "Output format: text or json")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 0, "Request timeout (0 waits for the service indefinitely)")
	submitCmd.MarkFlagsMutuallyExclusive("job", "job-file")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireBaseURL(cfg); err != nil {
		return err
	}

	var display flushable
	switch submitOutput {
	case "text":
		display = render.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr())
	case "json":
		display = render.NewJSON(cmd.OutOrStdout())
	default:
		return fmt.Errorf("invalid --output %q: must be text or json", submitOutput)
	}

	jobDescription := submitJob
	if submitJobFile != "" {
		data, err := os.ReadFile(submitJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jobDescription = string(data)
	}

	files, err := upload.LoadFiles(submitResumes)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	timeout := cfg.RequestTimeout
	if submitTimeout > 0 {
		timeout = submitTimeout
	}

	controller := upload.NewController(
		upload.Config{
			BaseURL: cfg.BaseURL,
			Options: &upload.Options{Timeout: timeout},
		},
		display,
		upload.WithLogger(logger),
	)

	_, submitErr := controller.Submit(cmd.Context(), upload.SubmissionInput{
		JobDescription: jobDescription,
		Files:          files,
	})
	if err := display.Flush(); err != nil {
		return err
	}

	if submitErr != nil {
		var validationErr *upload.ValidationError
		var submissionErr *upload.SubmissionError
		if errors.As(submitErr, &validationErr) || errors.As(submitErr, &submissionErr) {
			logger.Debug("submit command failed", zap.Error(submitErr))
			return errSubmitFailed
		}
		return submitErr
	}
	return nil
}
