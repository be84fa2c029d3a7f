package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	"github.com/yukikurage/shift-roster-api/internal/models"
)

type stubAuthenticator struct {
	tokens map[string]*auth.Principal
	seen   []string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.Principal, error) {
	s.seen = append(s.seen, token)
	if p, ok := s.tokens[token]; ok {
		return p, nil
	}
	return nil, apperror.Unauthorized("invalid token")
}

func newTestRouter(authenticator Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login/:token", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionKeyToken, c.Param("token"))
		if err := session.Save(); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", RequireAuth(authenticator), func(c *gin.Context) {
		p := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	authenticator := &stubAuthenticator{tokens: map[string]*auth.Principal{
		"admin-token": {ID: 1, Role: models.RoleAdmin},
		"staff-token": {ID: 2, Role: models.RoleStaff},
	}}
	r := newTestRouter(authenticator)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"role":"ADMIN"}`, w.Body.String())
	})

	t.Run("session token", func(t *testing.T) {
		login := httptest.NewRecorder()
		r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login/staff-token", nil))
		require.Equal(t, http.StatusNoContent, login.Code)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":2,"role":"STAFF"}`, w.Body.String())
	})

	t.Run("header wins over session", func(t *testing.T) {
		login := httptest.NewRecorder()
		r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login/staff-token", nil))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.JSONEq(t, `{"id":1,"role":"ADMIN"}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, authenticator.seen, "forged")
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic YWRtaW46YWRtaW4=")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
