package router

import (
	"net/http"

	"dnd-webapp-demo/backend/internal/api"
	"dnd-webapp-demo/backend/pkg/di"
	"dnd-webapp-demo/backend/pkg/errors"
	"dnd-webapp-demo/backend/pkg/health"
	"dnd-webapp-demo/backend/pkg/logger"
	"dnd-webapp-demo/backend/pkg/metrics"
	"dnd-webapp-demo/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Health    *health.Checker
	Metrics   *metrics.Metrics
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	cfg := container.Config

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first so every request is captured
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	m := metrics.New()
	engine.Use(m.Middleware())

	rateLimiter := middleware.NewRateLimiter(container.Logger, middleware.RateLimiterOptions{
		Limit:          rate.Limit(cfg.Security.RateLimit),
		Burst:          cfg.Security.RateLimitBurst,
		ExpiryDuration: middleware.DefaultRateLimiterOptions().ExpiryDuration,
		KeyFunc:        middleware.DefaultRateLimiterOptions().KeyFunc,
	})
	engine.Use(rateLimiter.Middleware())

	checker := health.NewChecker(container.Logger)
	checker.RegisterDatabaseCheck(container.DB)

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Health:    checker,
		Metrics:   m,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	cfg := r.Container.Config

	r.Engine.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	auth := api.InitDataAuth(cfg, r.Container.UserService)

	meHandler := api.NewMeHandler()
	characterHandler := api.NewCharacterHandler(r.Container.CharacterService)
	collectionHandler := api.NewCollectionHandler(r.Container.CharacterService, r.Container.CollectionService)
	equipmentHandler := api.NewEquipmentHandler(r.Container.CharacterService, r.Container.EquipmentService)
	templateHandler := api.NewTemplateHandler(r.Container.TemplateService)
	sheetHandler := api.NewSheetHandler(r.Container.SheetService)

	r.Engine.GET("/metrics", r.Metrics.Handler())

	apiRoutes := r.Engine.Group("/api")

	// Public routes (no auth required)
	apiRoutes.GET("/health", r.Health.Handler())

	// Everything else requires a verified initData payload
	protected := apiRoutes.Group("/")
	protected.Use(auth)
	{
		protected.GET("/me", meHandler.Me)

		characters := protected.Group("/characters")
		{
			characters.GET("", characterHandler.List)
			characters.POST("", characterHandler.Create)
			characters.POST("/import", sheetHandler.Import)

			characters.GET("/:id", characterHandler.Get)
			characters.PATCH("/:id", characterHandler.Update)
			characters.PATCH("/:id/custom", characterHandler.UpdateCustom)
			characters.POST("/:id/apply-template", templateHandler.Apply)

			characters.GET("/:id/sheet", sheetHandler.Get)
			characters.GET("/:id/export", sheetHandler.Export)

			characters.GET("/:id/items", collectionHandler.ListItems)
			characters.POST("/:id/items", collectionHandler.AddItem)
			characters.DELETE("/:id/items/:itemId", collectionHandler.DeleteItem)

			characters.GET("/:id/spells", collectionHandler.ListSpells)
			characters.POST("/:id/spells", collectionHandler.AddSpell)
			characters.DELETE("/:id/spells/:spellId", collectionHandler.DeleteSpell)

			characters.GET("/:id/abilities", collectionHandler.ListAbilities)
			characters.POST("/:id/abilities", collectionHandler.AddAbility)
			characters.DELETE("/:id/abilities/:abilityId", collectionHandler.DeleteAbility)

			characters.GET("/:id/states", collectionHandler.ListStates)
			characters.POST("/:id/states", collectionHandler.AddState)
			characters.DELETE("/:id/states/:stateId", collectionHandler.DeleteState)

			characters.GET("/:id/summons", collectionHandler.ListSummons)
			characters.POST("/:id/summons", collectionHandler.AddSummon)
			characters.DELETE("/:id/summons/:summonId", collectionHandler.DeleteSummon)

			characters.GET("/:id/equipment", equipmentHandler.Get)
			characters.PATCH("/:id/equipment", equipmentHandler.Update)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", templateHandler.Create)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.POST("/:id/create-character", templateHandler.CreateCharacter)
		}
	}

	// The mini-app front-end is served as static files next to the API
	r.Engine.Static("/webapp", cfg.Server.WebAppDir)
	r.Engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/webapp/")
	})
}

// corsMiddleware handles cross-origin requests from the mini-app origin
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, "+api.InitDataHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
