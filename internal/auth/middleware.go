package auth

import (
	"net/http"
	"strings"

	"messenger/internal/httpx"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// Required rejects requests without a valid bearer token and stores the
// caller's id under UserIDKey.
func Required(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		uid, err := v.UserID(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}

// UserID returns the id stored by Required.
func UserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int)
	return uid, ok
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	httpx.Abort(c, http.StatusUnauthorized, detail)
}
