package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

const (
	msgUnauthorized    = "Invalid or expired token"
	msgForbidden       = "You do not have permission to access this resource"
	msgPremiumRequired = "This feature requires a Premium subscription"
)

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Principal, error)
}

// Authenticate кладёт Principal в контекст gin. Любая ошибка даёт один и тот же 401.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, 401, response.CodeUnauthorized, msgUnauthorized)
			return
		}
		p, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			response.Fail(c, 401, response.CodeUnauthorized, msgUnauthorized)
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Fail(c, 401, response.CodeUnauthorized, msgUnauthorized)
			return
		}
		if !slices.Contains(roles, p.Role) {
			response.Fail(c, 403, response.CodeForbidden, msgForbidden)
			return
		}
		c.Next()
	}
}

func RequirePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Fail(c, 401, response.CodeUnauthorized, msgUnauthorized)
			return
		}
		if !p.Role.HasPremium() {
			response.Fail(c, 403, response.CodePremiumRequired, msgPremiumRequired)
			return
		}
		c.Next()
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
