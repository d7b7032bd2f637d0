package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "sales_portal_backend/internal/http"
	"sales_portal_backend/platform/httpkit"
	"sales_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	secret string
}

func (c testConfig) GetHTTPAddr() string        { return ":0" }
func (c testConfig) GetCORSAllowAll() bool      { return true }
func (c testConfig) GetCORSOrigins() []string   { return []string{"*"} }
func (c testConfig) GetCORSAllowCreds() bool    { return false }
func (c testConfig) GetRateLimitRPS() float64   { return 0 }
func (c testConfig) GetRateLimitBurst() int     { return 0 }
func (c testConfig) GetJWTAccessSecret() string { return c.secret }

type stubHealth struct{ err error }

func (h stubHealth) Ping(context.Context) error { return h.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/ping", func(c *gin.Context) {
		httpkit.OK(c, "pong")
	})
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(secret string, health apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  testConfig{secret: secret},
		Logger:  logger.Nop(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	})
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestBanner(t *testing.T) {
	rec := serve(newEngine("", stubHealth{}), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bannerText, rec.Body.String())
}

func TestHealthReflectsDatabase(t *testing.T) {
	rec := serve(newEngine("", stubHealth{}), http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newEngine("", stubHealth{err: errors.New("down")}), http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestModulesMountUnderAPI(t *testing.T) {
	rec := serve(newEngine("", stubHealth{}), http.MethodGet, "/api/ping")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
	assert.NotEmpty(t, rec.Header().Get(httpkit.HeaderRequestID))
}

func TestProtectedRoutesRequireTokenWhenSecretSet(t *testing.T) {
	engine := newEngine("secret", stubHealth{})

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/health").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newEngine("", stubHealth{}), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
}
