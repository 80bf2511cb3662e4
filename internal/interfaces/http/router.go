package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminUC "github.com/retain-hq/retain/internal/application/admin/usecases"
	analyticsUC "github.com/retain-hq/retain/internal/application/analytics/usecases"
	saveflowUC "github.com/retain-hq/retain/internal/application/saveflow/usecases"
	sellingplanUC "github.com/retain-hq/retain/internal/application/sellingplan/usecases"
	settingsUC "github.com/retain-hq/retain/internal/application/settings/usecases"
	subscriptionUC "github.com/retain-hq/retain/internal/application/subscription/usecases"
	validationUC "github.com/retain-hq/retain/internal/application/validation/usecases"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/infrastructure/auth"
	"github.com/retain-hq/retain/internal/infrastructure/cache"
	"github.com/retain-hq/retain/internal/infrastructure/config"
	"github.com/retain-hq/retain/internal/infrastructure/email"
	"github.com/retain-hq/retain/internal/infrastructure/repository"
	"github.com/retain-hq/retain/internal/interfaces/http/handlers"
	"github.com/retain-hq/retain/internal/interfaces/http/middleware"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
	logger logger.Interface

	authMW   *middleware.AuthMiddleware
	tenantMW *middleware.TenantMiddleware

	authHandler         *handlers.AuthHandler
	subscriptionHandler *handlers.SubscriptionHandler
	saveFlowHandler     *handlers.SaveFlowHandler
	validationHandler   *handlers.ValidationHandler
	sellingPlanHandler  *handlers.SellingPlanHandler
	settingsHandler     *handlers.SettingsHandler
	analyticsHandler    *handlers.AnalyticsHandler
}

// NewRouter builds the full dependency graph. The analytics cache may be nil
// when Redis is not configured.
func NewRouter(
	gormDB *gorm.DB,
	cfg *config.Config,
	dispatcher events.Publisher,
	analyticsCache cache.AnalyticsCache,
	log logger.Interface,
) *Router {
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	orderRepo := repository.NewOrderRepository(gormDB, log)
	activityRepo := repository.NewActivityRepository(gormDB, log)
	settingsRepo := repository.NewSettingsRepository(gormDB, log)
	tenantRepo := repository.NewTenantRepository(gormDB, log)
	flowRepo := repository.NewSaveFlowRepository(gormDB, log)
	attemptRepo := repository.NewSaveAttemptRepository(gormDB, log)
	runRepo := repository.NewValidationRunRepository(gormDB, log)
	issueRepo := repository.NewValidationIssueRepository(gormDB, log)
	planRepo := repository.NewSellingPlanRepository(gormDB, log)
	adminRepo := repository.NewAdminRepository(gormDB, log)

	txManager := db.NewTransactionManager(gormDB)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	emailQueue := email.NewQueue(gormDB, log)
	renderer := email.NewRenderer()

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionUC.NewCreateSubscriptionUseCase(subscriptionRepo, activityRepo, dispatcher, log),
		subscriptionUC.NewPauseSubscriptionUseCase(subscriptionRepo, activityRepo, settingsRepo, dispatcher, log),
		subscriptionUC.NewResumeSubscriptionUseCase(subscriptionRepo, activityRepo, dispatcher, log),
		subscriptionUC.NewCancelSubscriptionUseCase(subscriptionRepo, orderRepo, activityRepo, dispatcher, log),
		subscriptionUC.NewSkipNextOrderUseCase(subscriptionRepo, orderRepo, activityRepo, settingsRepo, dispatcher, log),
		subscriptionUC.NewUpdateSubscriptionUseCase(subscriptionRepo, activityRepo, log),
		subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo, orderRepo, log),
		subscriptionUC.NewListSubscriptionsUseCase(subscriptionRepo, log),
		subscriptionUC.NewListActivitiesUseCase(subscriptionRepo, activityRepo, log),
	)

	manageFlowUC := saveflowUC.NewManageFlowUseCase(flowRepo, log)
	saveFlowHandler := handlers.NewSaveFlowHandler(
		manageFlowUC,
		saveflowUC.NewTriggerFlowUseCase(flowRepo, attemptRepo, subscriptionRepo, activityRepo, emailQueue, renderer, log),
		saveflowUC.NewCompleteAttemptUseCase(flowRepo, attemptRepo, subscriptionRepo, orderRepo, activityRepo, dispatcher, log),
		saveflowUC.NewAttemptQueryUseCase(flowRepo, attemptRepo, subscriptionRepo, log),
		saveflowUC.NewFlowAnalyticsUseCase(flowRepo, attemptRepo, log),
	)

	validationHandler := handlers.NewValidationHandler(
		validationUC.NewRunValidationUseCase(runRepo, issueRepo, subscriptionRepo, orderRepo, settingsRepo, log),
		validationUC.NewAutoFixUseCase(runRepo, issueRepo, subscriptionRepo, orderRepo, activityRepo, txManager, log),
		validationUC.NewValidationQueryUseCase(runRepo, issueRepo, log),
	)

	sellingPlanHandler := handlers.NewSellingPlanHandler(
		sellingplanUC.NewManagePlanUseCase(planRepo, log),
		sellingplanUC.NewApplyPlanUseCase(planRepo, subscriptionRepo, activityRepo, log),
	)

	settingsHandler := handlers.NewSettingsHandler(settingsUC.NewSettingsUseCase(settingsRepo, log))

	analyticsHandler := handlers.NewAnalyticsHandler(
		analyticsUC.NewRevenueUseCase(subscriptionRepo, analyticsCache, log),
		analyticsUC.NewChurnUseCase(subscriptionRepo, log),
		analyticsUC.NewCohortUseCase(subscriptionRepo, log),
	)

	authHandler := handlers.NewAuthHandler(adminUC.NewAuthUseCase(adminRepo, hasher, jwtService, log))

	return &Router{
		engine:              gin.New(),
		cfg:                 cfg,
		logger:              log,
		authMW:              middleware.NewAuthMiddleware(jwtService, log),
		tenantMW:            middleware.NewTenantMiddleware(tenantRepo, log),
		authHandler:         authHandler,
		subscriptionHandler: subscriptionHandler,
		saveFlowHandler:     saveFlowHandler,
		validationHandler:   validationHandler,
		sellingPlanHandler:  sellingPlanHandler,
		settingsHandler:     settingsHandler,
		analyticsHandler:    analyticsHandler,
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", healthCheck)

	r.setupAuthRoutes()
	r.setupAdminRoutes()
	r.setupPortalRoutes()
}

func (r *Router) setupAuthRoutes() {
	authGroup := r.engine.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}
}

// setupAdminRoutes configures the merchant dashboard API. Every route runs
// behind JWT auth and inside the tenant scope from the token.
func (r *Router) setupAdminRoutes() {
	api := r.engine.Group("/api/v1")
	api.Use(r.authMW.RequireAuth())
	api.Use(r.tenantMW.ResolveTenant())
	{
		subs := api.Group("/subscriptions")
		{
			subs.POST("", r.subscriptionHandler.Create)
			subs.GET("", r.subscriptionHandler.List)
			subs.GET("/:id", r.subscriptionHandler.Get)
			subs.GET("/:id/orders", r.subscriptionHandler.Orders)
			subs.GET("/:id/activities", r.subscriptionHandler.Activities)
			subs.POST("/:id/pause", r.subscriptionHandler.Pause)
			subs.POST("/:id/resume", r.subscriptionHandler.Resume)
			subs.POST("/:id/cancel", r.subscriptionHandler.Cancel)
			subs.POST("/:id/skip", r.subscriptionHandler.SkipNextOrder)
			subs.PUT("/:id/frequency", r.subscriptionHandler.UpdateFrequency)
			subs.PUT("/:id/quantity", r.subscriptionHandler.UpdateQuantity)
			subs.PUT("/:id/pricing", r.subscriptionHandler.UpdatePricing)
			subs.PUT("/:id/payment-card", r.subscriptionHandler.UpdatePaymentCard)
		}

		flows := api.Group("/save-flows")
		{
			flows.POST("", r.saveFlowHandler.Create)
			flows.GET("", r.saveFlowHandler.List)
			flows.GET("/analytics", r.saveFlowHandler.Analytics)
			flows.GET("/:id", r.saveFlowHandler.Get)
			flows.PUT("/:id", r.saveFlowHandler.Update)
			flows.POST("/:id/toggle", r.saveFlowHandler.Toggle)
			flows.DELETE("/:id", r.saveFlowHandler.Delete)
			flows.GET("/:id/attempts", r.saveFlowHandler.ListAttempts)
		}

		validation := api.Group("/validation")
		{
			validation.POST("/runs", r.validationHandler.Run)
			validation.GET("/runs", r.validationHandler.ListRuns)
			validation.GET("/runs/:id", r.validationHandler.GetRun)
			validation.GET("/issues", r.validationHandler.ListIssues)
			validation.POST("/issues/auto-fix", r.validationHandler.AutoFix)
		}

		plans := api.Group("/selling-plans")
		{
			plans.POST("", r.sellingPlanHandler.Create)
			plans.GET("", r.sellingPlanHandler.List)
			plans.GET("/:id", r.sellingPlanHandler.Get)
			plans.PUT("/:id", r.sellingPlanHandler.Update)
			plans.POST("/:id/toggle", r.sellingPlanHandler.Toggle)
			plans.DELETE("/:id", r.sellingPlanHandler.Delete)
			plans.POST("/:id/apply", r.sellingPlanHandler.Apply)
		}

		api.GET("/settings", r.settingsHandler.Get)
		api.PUT("/settings", r.settingsHandler.Update)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/revenue", r.analyticsHandler.Revenue)
			analytics.GET("/churn", r.analyticsHandler.Churn)
			analytics.GET("/status-counts", r.analyticsHandler.StatusCounts)
			analytics.GET("/cohorts", r.analyticsHandler.Cohorts)
		}
	}
}

// setupPortalRoutes configures the customer-facing cancellation surface.
// Tenant scope comes from the X-Tenant-Slug header; actions the tenant has
// not enabled for customers are rejected in the use cases.
func (r *Router) setupPortalRoutes() {
	portal := r.engine.Group("/portal/v1")
	portal.Use(r.tenantMW.ResolveTenant())
	{
		portal.GET("/subscriptions/:id", r.subscriptionHandler.Get)
		portal.POST("/subscriptions/:id/pause", r.subscriptionHandler.Pause)
		portal.POST("/subscriptions/:id/resume", r.subscriptionHandler.Resume)
		portal.POST("/subscriptions/:id/skip", r.subscriptionHandler.SkipNextOrder)

		portal.POST("/save-flows/trigger", r.saveFlowHandler.Trigger)
		portal.POST("/save-attempts/:id/complete", r.saveFlowHandler.CompleteAttempt)
	}
}

func healthCheck(c *gin.Context) {
	utils.SuccessResponse(c, 200, "", gin.H{"status": "ok"})
}
