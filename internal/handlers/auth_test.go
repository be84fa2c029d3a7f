package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	"github.com/yukikurage/shift-roster-api/internal/dto"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/repository"
	"github.com/yukikurage/shift-roster-api/internal/services"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, tokens, "")
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func (env authTestEnv) router() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/logout", env.handler.Logout)
	r.GET("/api/auth/profile", middleware.RequireAuth(env.authService), env.handler.Profile)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	payload := map[string]string{
		"name":     "New Staff",
		"email":    "newstaff@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		User dto.UserDetailDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.User.Email)
	require.Equal(t, "STAFF", string(response.User.Role))
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_LoginAndProfile(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	_, err := env.authService.Register(t.Context(), services.RegisterInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string            `json:"token"`
		User  dto.UserDetailDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.Equal(t, "existing@example.com", response.User.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Profile through the session cookie alone
	profileReq := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	for _, cookie := range cookies {
		profileReq.AddCookie(cookie)
	}
	profileW := httptest.NewRecorder()
	r.ServeHTTP(profileW, profileReq)
	require.Equal(t, http.StatusOK, profileW.Code)

	// Logout clears the session
	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, cookie := range cookies {
		logoutReq.AddCookie(cookie)
	}
	logoutW := httptest.NewRecorder()
	r.ServeHTTP(logoutW, logoutReq)
	require.Equal(t, http.StatusOK, logoutW.Code)

	afterReq := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	for _, cookie := range logoutW.Result().Cookies() {
		afterReq.AddCookie(cookie)
	}
	afterW := httptest.NewRecorder()
	r.ServeHTTP(afterW, afterReq)
	require.Equal(t, http.StatusUnauthorized, afterW.Code)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	body, err := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
