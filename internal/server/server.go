package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/handlers"
	"github.com/justsurfingit/careerpilot/internal/middleware"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Profiles     *handlers.ProfileHandler
	Resumes      *handlers.ResumeHandler
	Applications *handlers.ApplicationHandler
	Chat         *handlers.ChatHandler
	Analyzer     *handlers.AnalyzerHandler
	Jobs         *handlers.JobHandler
}

type RouterConfig struct {
	ClientURL     string
	Tokens        *auth.TokenManager
	Users         auth.UserLookup
	MaxUploadSize int64
}

func NewRouter(cfg RouterConfig, h Handlers, log *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	if cfg.MaxUploadSize > 0 {
		// multipart parts beyond this spill to temp files
		r.MaxMultipartMemory = cfg.MaxUploadSize
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := auth.RequireAuth(cfg.Tokens, cfg.Users)

	r.GET("/", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/logout", requireAuth, h.Auth.Logout)
		authRoutes.GET("/me", requireAuth, h.Auth.Me)

		api.GET("/users/:github", h.Profiles.Get)
		api.POST("/users", requireAuth, h.Profiles.Save)

		resumes := api.Group("/resumes")
		resumes.GET("", h.Resumes.List)
		resumes.POST("", h.Resumes.Create)
		resumes.PUT("/:id", h.Resumes.Update)
		resumes.DELETE("/:id", h.Resumes.Delete)
		resumes.GET("/:id/export", h.Resumes.Export)

		apps := api.Group("/applications")
		apps.GET("", h.Applications.List)
		apps.POST("", h.Applications.Create)
		apps.PATCH("/:id", h.Applications.Update)
		apps.DELETE("/:id", h.Applications.Delete)

		api.GET("/stats", h.Applications.StatsForUser)

		api.POST("/chat", h.Chat.Chat)
		api.POST("/career-chat", h.Chat.CareerChat)
		api.POST("/resume-analyzer/analyze", h.Analyzer.Analyze)

		api.GET("/jobs/search", h.Jobs.SearchJobs)
	}

	return r
}

// Server wraps http.Server so it can be stopped by shutdown.Graceful.
type Server struct {
	http *http.Server
	log  *logging.Logger
}

func New(addr string, handler http.Handler, log *logging.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Run() error {
	s.log.Info("server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
