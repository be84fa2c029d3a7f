package middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
)

// Authenticator resolves a token to the principal of a live account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// RequireAuth resolves the caller from the bearer token, falling back to the
// token stored in the session at login.
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = sessionToken(c)
		}
		if token == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		// Store the principal in context for easy access in handlers
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Set(constants.ContextKeyUserID, principal.ID)
		c.Next()
	}
}

// GetPrincipal retrieves the verified caller from context
func GetPrincipal(c *gin.Context) *auth.Principal {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil
	}
	principal, _ := value.(*auth.Principal)
	return principal
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	token, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return token
}
