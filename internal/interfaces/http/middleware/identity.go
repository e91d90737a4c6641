package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicgrid/internal/shared/authorization"
	"civicgrid/internal/shared/utils"
)

const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"
)

// Identity reads the caller identity from trusted gateway headers. The API
// gateway in front of this service authenticates the user and forwards the
// verified ID and role; this service only authorizes. Unknown roles degrade
// to CITIZEN rather than being rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(userIDHeader)
		userID, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || userID == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or invalid user identity")
			c.Abort()
			return
		}

		c.Set("user_id", uint(userID))
		c.Set("user_role", authorization.ParseRole(c.GetHeader(userRoleHeader)))
		c.Next()
	}
}

// ActorID returns the authenticated user ID set by Identity.
func ActorID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	id, _ := v.(uint)
	return id
}

// ActorRole returns the authenticated role set by Identity.
func ActorRole(c *gin.Context) authorization.Role {
	v, _ := c.Get("user_role")
	role, ok := v.(authorization.Role)
	if !ok {
		return authorization.RoleCitizen
	}
	return role
}
