package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
)

const sessionKey = "session"

// RequireSession rejects requests while nobody is logged in. The session
// itself lives in the local store; the UI sends no credential.
func RequireSession(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Current(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Set("user_id", session.UserID)
		c.Set("user_email", session.Email)

		c.Next()
	}
}

// GetSession returns the session attached by RequireSession
func GetSession(c *gin.Context) *entity.Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*entity.Session)
	return session
}
