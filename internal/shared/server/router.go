package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/services/health"
	"triage-backend/internal/shared/auth"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupUpload  = "UPLOAD"
	rateGroupRead    = "READ"
)

// RouteRegistrar attaches a domain's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter wires together.
type RouterDeps struct {
	Config   config.Config
	Keys     *auth.Keys
	DB       *sql.DB
	Handlers []RouteRegistrar
	Limiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" && deps.Config.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Keys),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(health.NewService(deps.DB)))
	registerMeRoutes(api)
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	uploadBurst := burst / 5
	if uploadBurst < 1 && burst > 0 {
		uploadBurst = 1
	}
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		Limiter:      deps.Limiter,
		GroupFor: func(c *gin.Context) string {
			switch {
			case c.FullPath() == "/api/v1/analyze/upload":
				return rateGroupUpload
			case c.Request.Method == http.MethodGet:
				return rateGroupRead
			default:
				return rateGroupDefault
			}
		},
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: rps, Burst: burst},
			rateGroupUpload:  {Rate: rps / 5, Burst: uploadBurst},
		},
	}
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := svc.Status(c.Request.Context())
		if !status.OK {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
