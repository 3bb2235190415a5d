package server

import (
	"net/http"

	"authservice/internal/config"
	"authservice/internal/handler"
	"authservice/internal/middleware"
	"authservice/internal/repository"
	"authservice/internal/roles"
	"authservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	db       *sqlx.DB
	cfg      *config.Config
	log      *logrus.Logger
	zlog     *zap.Logger
	notifier handler.Notifier
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *logrus.Logger, zlog *zap.Logger, notifier handler.Notifier) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		db:       db,
		cfg:      cfg,
		log:      log,
		zlog:     zlog,
		notifier: notifier,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Initialize Auth components
	authRepo := repository.NewAuthRepository(s.db, s.log)
	authService := service.NewAuthService(authRepo, []byte(s.cfg.Auth.JWTSecret), s.cfg.TokenTTL(), s.cfg.Auth.BcryptCost, s.zlog)
	userService := service.NewUserService(authRepo, s.zlog)
	authHandler := handler.NewAuthHandler(authService, s.notifier, s.log)
	userHandler := handler.NewUserHandler(userService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes. Verification always runs before any role gate so
	// the gate only ever sees attached claims.
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.RequireAuth(authService, s.zlog))
	{
		authRequired.GET("/auth/me", middleware.RequireRole(roles.Basic), userHandler.Me)
		authRequired.GET("/users", userHandler.ListUsers)
		authRequired.GET("/users/stats", middleware.RequireRole(roles.Admin), userHandler.Stats)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
