package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/auth"
	"github.com/campuscanteen/canteen-api/internal/user"
)

const userKey = "authUser"

// CookieName is the httponly cookie carrying the session token.
const CookieName = "token"

// UserSource resolves the authenticated user from the store.
type UserSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*user.User, error)
}

// Auth verifies the bearer credential (Authorization header or cookie),
// loads the user, and aborts with 401 on any failure. Signature and
// expiry are always checked; there is no bypass.
func Auth(users UserSource, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		} else if v, err := c.Cookie(CookieName); err == nil {
			raw = v
		}
		if raw == "" {
			Fail(c, http.StatusUnauthorized, "Authentication required. No token provided.")
			c.Abort()
			return
		}
		uid, err := auth.Parse(secret, raw)
		if err != nil {
			Fail(c, http.StatusUnauthorized, "Token is invalid or expired")
			c.Abort()
			return
		}
		oid, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			Fail(c, http.StatusUnauthorized, "Token is invalid or expired")
			c.Abort()
			return
		}
		u, err := users.GetByID(c.Request.Context(), oid)
		if err != nil {
			Fail(c, http.StatusUnauthorized, "User not found")
			c.Abort()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// AdminOnly gates a route to admin users; must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin() {
			Fail(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Auth, or nil.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

// SetUser is exposed for handler tests that bypass the middleware.
func SetUser(c *gin.Context, u *user.User) {
	c.Set(userKey, u)
}
