package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/config"
)

// requiredHeaders are sent by the UI on every write whatever the deployment
// allows besides.
var requiredHeaders = []string{"Content-Type", IdempotencyKeyHeader}

// CORSMiddleware lets the configured UI origins call the gateway. Lists come
// from config; the headers the ledger writes depend on are always allowed and
// the replay marker is exposed so the UI can tell a retried confirmation.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	// without origins only same-origin callers are served
	if len(cfg.AllowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	headers := slices.Clone(cfg.AllowedHeaders)
	for _, h := range requiredHeaders {
		if !slices.Contains(headers, h) {
			headers = append(headers, h)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     headers,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
