package router

import (
	"context"
	"net/http"
	"time"

	apphttp "sales_portal_backend/internal/http"
	"sales_portal_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	bannerText    = "Sales Portal API is running..."
	healthTimeout = 2 * time.Second
)

func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(httpkit.Metrics())
	engine.Use(cors.New(corsConfig(cfg)))

	if cfg.GetRateLimitRPS() > 0 {
		limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), app.Logger)
		engine.Use(limiter.RateLimit())
	}

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, bannerText)
	})
	engine.GET("/metrics", httpkit.MetricsHandler())

	api := engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := app.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := api.Group("")
	protected.Use(httpkit.AuthRequired(cfg))

	routerCtx := &apphttp.RouterContext{
		Engine:    engine,
		API:       api,
		Protected: protected,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Info("module registered", "module", module.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", httpkit.HeaderRequestID}
	corsCfg.ExposeHeaders = []string{httpkit.HeaderRequestID}
	corsCfg.AllowCredentials = cfg.GetCORSAllowCreds()
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}
