package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"gorm.io/gorm"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/config"
	"github.com/justsurfingit/careerpilot/internal/database"
	"github.com/justsurfingit/careerpilot/internal/handlers"
	"github.com/justsurfingit/careerpilot/internal/jobsearch"
	"github.com/justsurfingit/careerpilot/internal/server"
	"github.com/justsurfingit/careerpilot/internal/services"
	"github.com/justsurfingit/careerpilot/pkg/extractor"
	"github.com/justsurfingit/careerpilot/pkg/jsearch"
	"github.com/justsurfingit/careerpilot/pkg/logging"
	"github.com/justsurfingit/careerpilot/pkg/shutdown"
)

type CLI struct {
	EnvFile string `help:"Path to a .env file." default:".env" name:"env-file"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API."`
	Migrate MigrateCmd `cmd:"" help:"Create or update database tables and exit."`
}

// appEnv is what every command receives from main.
type appEnv struct {
	cfg config.Config
	log *logging.Logger
}

type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"How long in-flight requests get on shutdown." default:"15s"`
	SkipMigrate     bool          `help:"Do not auto-migrate on start."`
}

type MigrateCmd struct{}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("careerpilot"),
		kong.Description("Job seeker backend: accounts, resumes, applications, AI review and job search."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	envErr := config.LoadEnvFile(cli.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	if envErr != nil {
		log.Info("no env file loaded, using process environment", "path", cli.EnvFile)
	}

	if err := kctx.Run(&appEnv{cfg: cfg, log: log}); err != nil {
		log.Error("command failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func (m *MigrateCmd) Run(rt *appEnv) error {
	db, err := database.Connect(rt.cfg.DatabaseURL, rt.log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, rt.log); err != nil {
		return err
	}
	rt.log.Info("migrations applied")
	return nil
}

func (s *ServeCmd) Run(rt *appEnv) error {
	cfg, log := rt.cfg, rt.log

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if !s.SkipMigrate {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}

	router, err := buildRouter(cfg, db, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Addr(), router, log)
	// Returns once in-flight requests have drained, before the deferred db close.
	return shutdown.Graceful(context.Background(), srv, s.ShutdownTimeout, log, os.Interrupt, syscall.SIGTERM)
}

func buildRouter(cfg config.Config, db *gorm.DB, log *logging.Logger) (http.Handler, error) {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	authSvc := services.NewAuthService(db, tokens)
	profileSvc := services.NewProfileService(db)
	resumeSvc := services.NewResumeService(db)
	appSvc := services.NewApplicationService(db)
	statsSvc := services.NewStatsService(db)
	skillSvc := services.NewSkillService(db)

	llmSvc, err := services.NewLLMService(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, log.With("component", "llm"))
	if err != nil {
		return nil, err
	}

	ext := extractor.NewClient(extractor.Config{
		TextURL:     cfg.Extractor.TextURL,
		EntitiesURL: cfg.Extractor.EntitiesURL,
		Timeout:     cfg.Extractor.Timeout,
	})
	analyzer := services.NewAnalyzerService(ext, ext, llmSvc, skillSvc, log.With("component", "analyzer"))

	jobs, err := newJobSearch(cfg, log.With("component", "jobsearch"))
	if err != nil {
		return nil, err
	}

	h := server.Handlers{
		Auth:         handlers.NewAuthHandler(authSvc, tokens.TTL(), cfg.JWT.SecureCookie),
		Profiles:     handlers.NewProfileHandler(profileSvc),
		Resumes:      handlers.NewResumeHandler(resumeSvc),
		Applications: handlers.NewApplicationHandler(appSvc, statsSvc),
		Chat:         handlers.NewChatHandler(llmSvc),
		Analyzer:     handlers.NewAnalyzerHandler(analyzer, cfg.Extractor.MaxFileSize),
		Jobs:         handlers.NewJobHandler(jobs),
	}

	return server.NewRouter(server.RouterConfig{
		ClientURL:     cfg.ClientURL,
		Tokens:        tokens,
		Users:         authSvc,
		MaxUploadSize: cfg.Extractor.MaxFileSize,
	}, h, log), nil
}

// newJobSearch wires the JSearch client into the fan-out service. Without an API key
// the service is built with no searcher and every search reports ErrNotConfigured.
func newJobSearch(cfg config.Config, log *logging.Logger) (*jobsearch.Service, error) {
	opts := jobsearch.Options{
		DefaultLocations: cfg.JSearch.DefaultLocations,
		DefaultQuery:     cfg.JSearch.DefaultQuery,
		PagesPerLocation: cfg.JSearch.PagesPerLocation,
		CallTimeout:      cfg.JSearch.Timeout,
		MaxConcurrency:   cfg.JSearch.MaxConcurrency,
	}

	if cfg.JSearch.APIKey == "" {
		log.Warn("RAPID_API_KEY is empty, job search is disabled")
		return jobsearch.NewService(nil, opts, log), nil
	}

	client, err := jsearch.NewClient(jsearch.Config{
		APIKey:     cfg.JSearch.APIKey,
		Host:       cfg.JSearch.Host,
		BaseURL:    cfg.JSearch.BaseURL,
		RatePerSec: cfg.JSearch.RatePerSec,
	})
	if err != nil {
		return nil, err
	}
	return jobsearch.NewService(client, opts, log), nil
}
