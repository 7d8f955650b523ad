package middleware

import (
	"net/http"
	"strings"

	"gridspot/internal/shared/config"
	"gridspot/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// OperatorAuthWithConfig authenticates the operator channel against the
// configured bcrypt hash of the shared secret. The secret travels in the
// X-Operator-Secret header (or as Bearer token); the operator name in
// X-Operator-Name is recorded in the audit trail.
func OperatorAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Operator.SecretHash == "" {
			response.Fail(c, http.StatusServiceUnavailable, "operator channel is not configured", nil)
			c.Abort()
			return
		}

		secret := c.GetHeader("X-Operator-Secret")
		if secret == "" {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && parts[0] == "Bearer" {
					secret = parts[1]
				}
			}
		}
		if secret == "" {
			response.Fail(c, http.StatusUnauthorized, "operator credential is required", nil)
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.Operator.SecretHash), []byte(secret)); err != nil {
			response.Fail(c, http.StatusUnauthorized, "invalid operator credential", nil)
			c.Abort()
			return
		}

		actor := c.GetHeader("X-Operator-Name")
		if actor == "" {
			actor = "operator"
		}
		c.Set("operator_actor", actor)

		c.Next()
	}
}

// OperatorActor returns the audited actor name set by the operator auth
// middleware
func OperatorActor(c *gin.Context) string {
	if actor, exists := c.Get("operator_actor"); exists {
		if name, ok := actor.(string); ok {
			return name
		}
	}
	return "operator"
}
