package http

import (
	"log/slog"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/geocoder89/userhub/internal/security"
	"github.com/geocoder89/userhub/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the user routes over store. A nil registry disables
// metrics collection and the /metrics endpoint.
func NewRouter(log *slog.Logger, cfg config.Config, store users.Store, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	var obs users.Observer

	if reg != nil {
		prom := observability.NewProm(reg)
		r.Use(prom.GinHandleMiddleware())
		obs = prom

		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire up the service
	svc := users.NewService(store, security.NewBcryptHasher(cfg.BcryptCost), obs)

	// health
	h := handlers.NewHealthHandler(svc.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.GET("/", handlers.Home)

	usersHandler := handlers.NewUsersHandler(svc, log, cfg.StoreTimeout)

	api := r.Group("/users")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.RequireJSON())

	api.POST("", usersHandler.CreateUser)
	api.GET("", usersHandler.ListUsers)
	api.GET("/:id", usersHandler.GetUser)
	api.PUT("/:id", usersHandler.UpdateUser)
	api.DELETE("/:id", usersHandler.DeleteUser)

	return r
}
