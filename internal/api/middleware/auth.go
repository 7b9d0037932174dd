// internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"tusep-web/internal/auth"
	"tusep-web/internal/client"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey   = "session"
	userKey      = "user"
	userRoleKey  = "user_role"
	requestIDKey = "request_id"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// CookieOptions configures the browser session cookie.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// RequestID tags the request and every backend call it makes with one id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(client.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(client.RequestIDHeader, id)
		c.Request = c.Request.WithContext(client.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Session resolves the browser's session cookie to an auth.Session, issuing
// a fresh id when the browser has none.
func Session(reg *auth.Registry, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(opts.Name)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			SetSessionCookie(c, opts, sid)
		}
		s := reg.Get(c.Request.Context(), sid)
		c.Set(sessionKey, s)
		if u, ok := s.Current(); ok {
			c.Set(userKey, u)
			c.Set(userRoleKey, u.Role)
		}
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, opts CookieOptions, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, sid, int(opts.MaxAge/time.Second), "/", "", opts.Secure, true)
}

// Authenticate sends anonymous browsers to the login view. GET requests are
// redirected; other methods get a 401 naming the redirect target.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		if s != nil && s.Authenticated() {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodGet && !isWebSocket(c) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": LoginPath})
	}
}

// RedirectIfAuthenticated keeps logged-in users away from the login view.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := CurrentSession(c); s != nil && s.Authenticated() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorize admits roles that hold capability.
func Authorize(capability gate.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(userRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role not found in context"})
			return
		}
		r, ok := role.(models.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role has an invalid type"})
			return
		}
		if !gate.Has(r, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*auth.Session)
	return s
}

// CurrentUser is only meaningful behind Authenticate.
func CurrentUser(c *gin.Context) models.User {
	if s := CurrentSession(c); s != nil {
		u, _ := s.Current()
		return u
	}
	return models.User{}
}

func isWebSocket(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}
