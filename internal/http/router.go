package http

import (
	"github.com/geocoder89/taskhub/internal/auth"
	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/db"
	"github.com/geocoder89/taskhub/internal/http/handlers"
	"github.com/geocoder89/taskhub/internal/http/middlewares"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/geocoder89/taskhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "taskhub-api"

// Deps are the process-scoped handles the router wires into handlers.
// Prom and Gatherer may be nil, in which case metrics are not exposed.
type Deps struct {
	Stores   *db.Stores
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	cors := middlewares.NewCORS(cfg.CORSOrigins)
	r.Use(cors.Handler())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	stores := deps.Stores
	if stores == nil {
		stores = db.NewMemoryStores()
	}

	// health and docs
	h := handlers.NewHealthHandler(stores.Ping)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/docs", handlers.SwaggerUI)
	r.GET(handlers.OpenAPIPath, handlers.OpenAPISpec)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL())
	authSvc := service.NewAuthService(stores.Users, tokens, deps.Prom)
	taskSvc := service.NewTaskService(stores.Tasks)
	profileSvc := service.NewProfileService(stores.Users)

	guard := middlewares.NewAuthGuard(authSvc)

	authHandler := handlers.NewAuthHandler(authSvc)
	tasksHandler := handlers.NewTasksHandler(taskSvc)
	profileHandler := handlers.NewProfileHandler(profileSvc)

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/tasks", guard.Protect(tasksHandler.ListTasks))
	api.POST("/tasks", guard.Protect(tasksHandler.CreateTask))
	api.GET("/tasks/:id", guard.Protect(tasksHandler.GetTask))
	api.PUT("/tasks/:id", guard.Protect(tasksHandler.UpdateTask))
	api.DELETE("/tasks/:id", guard.Protect(tasksHandler.DeleteTask))

	api.GET("/profile", guard.Protect(profileHandler.GetProfile))
	api.PUT("/profile", guard.Protect(profileHandler.UpdateProfile))

	cors.AllowRoutes(r.Routes())

	return r
}
