package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency runs a request carrying an Idempotency-Key at most once. The
// key is reserved before the handler runs; a concurrent retry gets 409 and a
// later one replays the stored response. Failed responses release the key
// so a retry after an error runs again. Requests without the header pass
// through unchanged.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		// the concrete path keeps keys for different customers apart
		endpoint := c.Request.Method + " " + c.Request.URL.Path
		log := config.Log.With(zap.String("key", idempotencyKey), zap.String("endpoint", endpoint))

		reserved, err := config.Repo.Reserve(c.Request.Context(), &entity.IdempotencyKey{
			Key:       idempotencyKey,
			Endpoint:  endpoint,
			ExpiresAt: time.Now().Add(IdempotencyKeyTTL),
		})
		if err != nil {
			log.Warn("idempotency reservation failed", zap.Error(err))
			c.Next()
			return
		}

		if !reserved {
			replay(c, config, idempotencyKey, endpoint, log)
			return
		}

		// completion outlives a client that hung up mid-request
		ctx := context.WithoutCancel(c.Request.Context())
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := config.Repo.Release(ctx, idempotencyKey, endpoint); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			if err := config.Repo.Complete(ctx, idempotencyKey, endpoint, status, blw.body.String()); err != nil {
				log.Warn("failed to store idempotency response", zap.Error(err))
				return
			}
			completed = true
		}
	}
}

// replay answers a request whose key is already held.
func replay(c *gin.Context, config IdempotencyConfig, key, endpoint string, log *zap.Logger) {
	existing, err := config.Repo.GetByKey(c.Request.Context(), key, endpoint)
	if err != nil {
		log.Warn("idempotency lookup failed", zap.Error(err))
		response.Error(c, err)
		c.Abort()
		return
	}

	// a missing row was released between the reservation and the lookup
	if existing == nil || existing.InProgress() {
		response.Error(c, apperror.ErrRequestInProgress)
		c.Abort()
		return
	}

	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	c.Abort()
}
