package cli

import (
	"fmt"

	"hiremate/internal/ai"
	"hiremate/internal/auth"
	"hiremate/internal/notify"
	"hiremate/internal/server"
	"hiremate/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server for the job board API",
	Long: `Start an HTTP server that provides REST API endpoints for the job board.

Available endpoints:
- POST /api/jobseeker/signup, /api/jobseeker/signin: Job seeker accounts
- POST /api/recruiter/signup, /api/recruiter/signin: Recruiter accounts
- GET /api/jobs, GET /api/jobs/{id}: Browse job listings
- POST /api/jobs, POST /api/jobs/{id}/close: Manage listings (recruiter)
- GET /api/jobs/{id}/applications: Review applications (recruiter)
- POST /api/jobs/{id}/analyze: AI resume match analysis
- POST /api/jobs/{id}/apply: Submit an application
- POST /api/resumes/extract: Extract text from a resume file
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	db, err := store.New(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err.Error())
		}
	}()

	sessions, err := auth.NewSessionStore(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to session store: %w", err)
	}
	if sessions != nil {
		defer func() {
			if err := sessions.Close(); err != nil {
				logger.Warn("Failed to close session store", "error", err.Error())
			}
		}()
	}

	matchCfg := cfg.GetMatchConfig()
	matcher, err := ai.NewService(&matchCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := matcher.Provider.Close(); err != nil {
			logger.Warn("Failed to close AI provider", "error", err.Error())
		}
	}()

	notifier, err := notify.New(cfg.Broker, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	if notifier != nil {
		defer func() {
			if err := notifier.Close(); err != nil {
				logger.Warn("Failed to close message broker", "error", err.Error())
			}
		}()
	}

	deps := server.Dependencies{
		Store:    db,
		Matcher:  matcher,
		Tokens:   auth.NewTokenManager(cfg.Auth, sessions),
		Sessions: sessions,
		Notifier: notifier,
	}
	return server.NewServer(cfg, Version, deps, logger).Start()
}
