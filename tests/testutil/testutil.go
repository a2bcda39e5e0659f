package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// IssueTestToken mints a real session token for the given address. The role
// embedded in the token follows the allowlist, so staff addresses produce
// staff sessions.
func IssueTestToken(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()

	token, err := middleware.IssueToken(cfg, email)
	if err != nil {
		t.Fatalf("Failed to issue test token for %s: %v", email, err)
	}
	return token
}

// MockSessionMiddleware stores a session identity in the Gin context the way
// the real JWT middleware does, without requiring a token
func MockSessionMiddleware(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_email", email)
		c.Set("user_role", models.RoleForEmail(email))
		c.Next()
	}
}
