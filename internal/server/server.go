package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gympass/internal/auth"
	"gympass/internal/checkin"
	"gympass/internal/config"
	"gympass/internal/email"
	"gympass/internal/entitlement"
	"gympass/internal/gym"
	"gympass/internal/logger"
	"gympass/internal/realtime"
	"gympass/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, notifier realtime.Publisher) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	entitlementRepo := entitlement.NewRepository(db)
	checkInRepo := checkin.NewRepository(db)

	resolver := entitlement.NewResolver(entitlementRepo, gymRepo)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	entitlementHandler := entitlement.NewHandler(entitlement.NewService(entitlementRepo, gymRepo))
	checkInHandler := checkin.NewHandler(checkin.NewService(
		checkInRepo, gymRepo, resolver, userRepo, notifier, emailService,
	))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authenticators := []auth.Authenticator{auth.NewLocalSession(cfg.JWTSecret)}
	if cfg.ExternalJWTPublicKey != "" {
		external, err := auth.NewExternalOAuth(cfg.ExternalJWTPublicKey, cfg.ExternalJWTIssuer, cfg.ExternalJWTAudience)
		if err != nil {
			logger.WithError(err).Error("External authenticator disabled")
		} else {
			authenticators = append(authenticators, external)
		}
	}
	authMiddleware := auth.Middleware(authenticators...)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)
		protected.GET("/entitlements", entitlementHandler.ListMine)
		protected.POST("/gyms/:gymID/checkin", checkInHandler.RequestCheckIn)
		protected.GET("/checkins", checkInHandler.ListMyCheckIns)
		protected.POST("/checkins/:checkInID/checkout", checkInHandler.CheckOut)
	}

	// staff authorization is per-gym (manager id), checked in the service
	staff := router.Group("/staff")
	staff.Use(authMiddleware)
	{
		staff.GET("/gyms/:gymID/checkins/pending", checkInHandler.ListPending)
		staff.POST("/checkins/:checkInID/verify", checkInHandler.Verify)
		staff.POST("/checkins/:checkInID/reject", checkInHandler.Reject)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/gyms", gymHandler.CreateGym)
		admin.GET("/gyms", gymHandler.ListGyms)
		admin.POST("/entitlements", entitlementHandler.Grant)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{router: router}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
