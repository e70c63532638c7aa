package v1

import (
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	requestIDKey = "requestID"
	claimsKey    = "claims"
	actorKey     = "actor"
)

// requestID tags every request with an id, reusing the caller's one if sent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// session resolves the session token, if any. It never rejects a request.
func (h *handler) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := h.sessions.Resolve(c.Request); claims != nil {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

// requireUser lets through only requests from an existing, active user.
func (h *handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.svc.Authenticate(c.Request.Context(), claimsOf(c))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(actorKey, user)
		c.Next()
	}
}

func (h *handler) requireRole(role repository.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.svc.RequireRole(c.Request.Context(), claimsOf(c), role)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(actorKey, user)
		c.Next()
	}
}

func claimsOf(c *gin.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey)
	cl, _ := claims.(*auth.Claims)
	return cl
}

// actorOf returns the user set by requireUser or requireRole.
func actorOf(c *gin.Context) *repository.User {
	return c.MustGet(actorKey).(*repository.User)
}
