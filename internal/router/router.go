package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/config"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/handlers"
	"github.com/yukikurage/shift-roster-api/internal/logging"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/repository"
	"github.com/yukikurage/shift-roster-api/internal/services"
	"gorm.io/gorm"
)

// NewSessionStore returns a Redis-backed store when REDIS_HOST is set and a
// signed cookie store otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiresIn / time.Second),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// securityHeaders sets the browser hardening headers. HSTS is only sent in
// release mode.
func securityHeaders(cfg *config.Config) gin.HandlerFunc {
	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		IsDevelopment:         false,
	}
	if cfg.IsProduction() {
		secureConfig.STSSeconds = 15552000
		secureConfig.STSIncludeSubdomains = true
		secureConfig.SSLProxyHeaders = map[string]string{"X-Forwarded-Proto": "https"}
	}
	return secure.New(secureConfig)
}

// New wires repositories, services and handlers onto a gin engine.
func New(cfg *config.Config, db *gorm.DB, store sessions.Store) *gin.Engine {
	apierrors.UseJSONFieldNames()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	clockLogRepo := repository.NewClockLogRepository(db)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.SigningSecret(), cfg.JWTExpiresIn)
	authService := services.NewAuthService(userRepo, tokens, cfg.RestaurantEmailDomain)
	userService := services.NewUserService(userRepo)
	rosterService := services.NewRosterService(rosterRepo, shiftRepo)
	shiftService := services.NewShiftService(shiftRepo, rosterRepo, userRepo)
	clockLogService := services.NewClockLogService(clockLogRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	rosterHandler := handlers.NewRosterHandler(rosterService, shiftService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	clockLogHandler := handlers.NewClockLogHandler(clockLogService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestID())
	r.Use(logging.GinLogger())
	r.Use(securityHeaders(cfg))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", logging.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logging.RequestIDHeader, "Content-Disposition"}
	r.Use(cors.New(corsConfig))

	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Shift Roster API is running",
		})
	})

	requireAuth := middleware.RequireAuth(authService)

	api := r.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(middleware.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/profile", requireAuth, authHandler.Profile)
		}

		// Roster routes (protected)
		rosters := api.Group("/rosters")
		rosters.Use(requireAuth)
		{
			rosters.POST("", rosterHandler.CreateRoster)
			rosters.GET("", rosterHandler.ListRosters)
			rosters.GET("/my", rosterHandler.ListMyRosters)
			rosters.GET("/:id", rosterHandler.GetRoster)
			rosters.PUT("/:id", rosterHandler.UpdateRoster)
			rosters.DELETE("/:id", rosterHandler.DeleteRoster)
			rosters.POST("/:id/copy", rosterHandler.CopyRoster)
			rosters.GET("/:id/shifts", rosterHandler.ListRosterShifts)
			rosters.POST("/:id/shifts", rosterHandler.CreateRosterShift)
			rosters.GET("/:id/export", rosterHandler.ExportRoster)
		}

		// Shift routes (protected)
		shifts := api.Group("/shifts")
		shifts.Use(requireAuth)
		{
			shifts.GET("/:id", shiftHandler.GetShift)
			shifts.PUT("/:id", shiftHandler.UpdateShift)
			shifts.DELETE("/:id", shiftHandler.DeleteShift)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		api.GET("/staff", requireAuth, userHandler.ListStaff)
		api.GET("/my-shifts", requireAuth, shiftHandler.ListMyShifts)
		api.GET("/my-clocklogs", requireAuth, clockLogHandler.ListMyClockLogs)
	}

	return r
}
