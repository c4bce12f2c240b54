package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log can carry triage outcomes.
const (
	AnalysisIDKey = "analysisId"
	RiskLevelKey  = "riskLevel"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"is_guest":    isGuest,
			"analysis_id": c.GetString(AnalysisIDKey),
			"risk_level":  c.GetString(RiskLevelKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
