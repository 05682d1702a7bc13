package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/impact-assessment/internal/assessment"
	"github.com/BerylCAtieno/impact-assessment/internal/chart"
	"github.com/BerylCAtieno/impact-assessment/internal/config"
	"github.com/BerylCAtieno/impact-assessment/internal/metrics"
	"github.com/BerylCAtieno/impact-assessment/internal/reflection"
	"github.com/BerylCAtieno/impact-assessment/internal/sheets"
	"github.com/BerylCAtieno/impact-assessment/internal/web"
)

func newRootCmd() *cobra.Command {
	var (
		configFile string
		port       string
	)

	root := &cobra.Command{
		Use:           "isaq",
		Short:         "GÉNERA impact self-assessment questionnaire",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile, port)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./isaq.yaml)")
	root.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the questionnaire web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile, port)
		},
	}
	serveCmd.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")

	root.AddCommand(serveCmd, newScoreCmd())
	return root
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func serve(ctx context.Context, configFile, port string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	setupLogging(cfg)
	gin.SetMode(cfg.GinMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sheetsCfg := sheets.Config{
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		SheetURL:        cfg.Sheets.SheetURL,
		SheetName:       cfg.Sheets.SheetName,
	}
	if !sheetsCfg.Configured() {
		log.Warn().Msg("GCP_JSON_TEXT or PRIVATE_SHEET_URL not set, submissions will not be saved")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []assessment.Option
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := reflection.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		defer geminiClient.Close()
		opts = append(opts, assessment.WithReflector(geminiClient))
	}

	svc, err := assessment.NewService(chart.NewRadar(), sheets.NewAppender(sheetsCfg), metrics.New(reg), opts...)
	if err != nil {
		return err
	}

	router, err := web.NewRouter(web.NewHandler(svc), reg)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("form", fmt.Sprintf("http://localhost:%s/", cfg.Port)).
			Str("api", fmt.Sprintf("http://localhost:%s/api/assessments", cfg.Port)).
			Str("metrics", fmt.Sprintf("http://localhost:%s/metrics", cfg.Port)).
			Msg("ISA-Q server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
