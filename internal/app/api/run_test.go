package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
	cinemaworkflows "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/workflows"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
)

func TestNewRouter_AppliesIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := bootstrap.BuildGateways(nil)
	service := application.NewService(gw)
	cfg := bootstrap.Config{Port: "8080", JWTSecret: "secret", JWTIssuer: "cinema", Environment: "test"}
	router := NewRouter(cfg, service, cinemaworkflows.NewInlineTicketWorkflows(service), nil)

	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/movies", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "jane", "role": "User", "iss": "cinema"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authenticated := httptest.NewRecorder()
	router.ServeHTTP(authenticated, req)
	assert.Equal(t, http.StatusNotFound, authenticated.Code)
	assert.JSONEq(t, `{"status":"error","message":"No movies found."}`, authenticated.Body.String())
}
