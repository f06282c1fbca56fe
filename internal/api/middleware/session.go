package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session_id"
	// cookie lifetime matches the session store TTL
	sessionMaxAge = 30 * 24 * 60 * 60

	contextSessionID = "session_id"
	contextUserID    = "user_id"
)

// SessionMiddleware attaches a stable session id to every request. A new id
// is minted and set as a cookie on first touch. The optional X-User-ID header
// carries an authenticated identity verified upstream; it only widens cart
// persistence, it grants nothing.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(contextSessionID, sid)

		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(contextUserID, userID)
		}

		c.Next()
	}
}

// SessionID returns the request's session id.
func SessionID(c *gin.Context) string {
	return c.GetString(contextSessionID)
}

// UserID returns the authenticated user id, or empty for guests.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}
