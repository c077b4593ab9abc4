package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devops25/userauth/internal/common"
)

// usernameKey is the gin context key under which requireAuth stores the
// authenticated username.
const usernameKey = "username"

// bearerToken extracts the token from the Authorization header. A missing
// header or a malformed prefix means "no credentials", not an error.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// requireAuth validates the bearer token and stores the authenticated
// username in the request context. All validation failures collapse into a
// single 401 surface; the precise kind is logged server-side only.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := s.sessions.Validate(c.Request.Context(), tokenString)
		if err != nil {
			s.log.Warn(c.Request.Context(), "token rejected", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(usernameKey, claims.Username())
		c.Next()
	}
}
