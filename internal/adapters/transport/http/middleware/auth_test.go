package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubAuth maps raw tokens to roles.
type stubAuth map[string]model.Role

func (s stubAuth) Authenticate(_ context.Context, token string) (model.Principal, error) {
	role, ok := s[token]
	if !ok {
		return model.Principal{}, customErrors.ErrInvalidToken
	}
	return model.Principal{ID: uuid.New(), Email: "u@x.io", Role: role}, nil
}

func gatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{"free": model.RoleFree, "premium": model.RolePremium, "admin": model.RoleAdmin}

	r := gin.New()
	g := r.Group("/", Authenticate(auth))
	g.GET("/me", func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(200, string(p.Role))
	})
	g.GET("/premium", RequirePremium(), func(c *gin.Context) { c.Status(200) })
	g.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(200) })
	return r
}

func call(r *gin.Engine, path, authz string) (int, response.Envelope) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	r.ServeHTTP(w, req)

	var env response.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func TestAuthenticate_UniformFailures(t *testing.T) {
	r := gatedRouter()

	var first response.ErrorBody
	for i, h := range []string{"", "Bearer", "Bearer   ", "Basic free", "free", "Bearer forged"} {
		code, env := call(r, "/me", h)
		require.Equal(t, 401, code, "header %q", h)
		require.Equal(t, response.CodeUnauthorized, env.Error.Code)
		if i == 0 {
			first = *env.Error
		}
		require.Equal(t, first, *env.Error, "failures must be indistinguishable")
	}

	code, _ := call(r, "/me", "bearer free")
	require.Equal(t, 200, code)
}

func TestRequirePremium(t *testing.T) {
	r := gatedRouter()

	code, env := call(r, "/premium", "Bearer free")
	require.Equal(t, 403, code)
	require.Equal(t, response.CodePremiumRequired, env.Error.Code)

	for _, tok := range []string{"premium", "admin"} {
		code, _ = call(r, "/premium", "Bearer "+tok)
		require.Equal(t, 200, code, tok)
	}
}

func TestRequireRole(t *testing.T) {
	r := gatedRouter()

	for _, tok := range []string{"free", "premium"} {
		code, env := call(r, "/admin", "Bearer "+tok)
		require.Equal(t, 403, code)
		require.Equal(t, response.CodeForbidden, env.Error.Code)
	}
	code, _ := call(r, "/admin", "Bearer admin")
	require.Equal(t, 200, code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(200) })

	code, env := call(r, "/", "")
	require.Equal(t, 401, code)
	require.Equal(t, response.CodeUnauthorized, env.Error.Code)
}

func TestBearer(t *testing.T) {
	tok, ok := bearer("Bearer abc")
	require.True(t, ok)
	require.Equal(t, "abc", tok)

	_, ok = bearer("Token abc")
	require.False(t, ok)
}
