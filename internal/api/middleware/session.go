package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/session"
)

const (
	// SessionHeader carries the session id for non-browser clients
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the session id for browsers
	SessionCookie = "sid"

	sessionKey = "session"

	// sessionTouchInterval limits how often a busy session's expiry is rewritten
	sessionTouchInterval = time.Minute
)

// SessionMiddleware resolves the visitor's session from the header or cookie
// and starts an anonymous one when none is known. A returning session has
// its expiry extended at most once per minute. The id is echoed back on
// every response.
func SessionMiddleware(sessions *session.Manager, ttl time.Duration, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}

		sess, created, err := sessions.LoadOrBegin(c.Request.Context(), id)
		if err != nil {
			logger.Error("Failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if created {
			logger.Debug("Started anonymous session", zap.String("request_id", c.GetString(requestIDKey)))
		} else if _, err := sessions.TouchAfter(c.Request.Context(), sess, sessionTouchInterval); err != nil {
			logger.Warn("Failed to extend session", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		}

		c.Set(sessionKey, sess)
		c.Header(SessionHeader, sess.ID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, int(ttl.Seconds()), "/", "", secure, true)

		c.Next()
	}
}

// GetSessionFromContext retrieves the session from the Gin context
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
