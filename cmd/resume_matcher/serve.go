package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/render"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/upload"
)

var (
	servePort      int
	serveMaxUpload int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web console",
	Long:  `Start a local web console with the upload form and the processing time, top resume and ranked list regions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or config, 8080)")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload", server.DefaultMaxUploadBytes, "Maximum size of one submitted form in bytes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireBaseURL(cfg); err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	board := render.NewBoard()
	controller := upload.NewController(
		upload.Config{
			BaseURL: cfg.BaseURL,
			Options: &upload.Options{Timeout: cfg.RequestTimeout},
		},
		board,
		upload.WithLogger(logger.Named("upload")),
		upload.WithMetrics(observability.NewMetrics(reg)),
	)

	srv := server.New(
		server.Config{
			Port:           cfg.Server.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			MaxUploadBytes: serveMaxUpload,
		},
		controller,
		board,
		server.WithLogger(logger.Named("console")),
		server.WithGatherer(reg),
	)

	logger.Info("starting console",
		zap.String("addr", srv.Addr()),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("production", cfg.IsProduction()),
	)
	return srv.Run(cmd.Context())
}
