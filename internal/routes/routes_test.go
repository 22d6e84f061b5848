package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/repositories"
	"asset-system/pkg/customvalidator"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"
)

type routerFixture struct {
	e        *echo.Echo
	jwtSvc   service.JWTService
	denyList *repositories.TokenDenyList
}

// newRouterFixture mounts the real route table on controllers without
// services. Every request in these tests is answered before a service would
// be reached, either by the middleware or by path parameter parsing.
func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	nop := zap.NewNop()
	jwtSvc := service.NewJWTService("router-secret", time.Hour, 24*time.Hour, nop)
	denyList := repositories.NewTokenDenyList(repositories.NewRedisCacheRepository(client))
	authMW := middleware.NewAuthMiddleware(jwtSvc, denyList, nop)

	registerRoutes(e, handlers{
		auth:          controllers.NewAuthController(nil, jwtSvc, nop),
		office:        controllers.NewOfficeController(nil, nop),
		division:      controllers.NewDivisionController(nil, nop),
		asset:         controllers.NewAssetController(nil, nil, nil, nil, nop),
		assetImage:    controllers.NewAssetImageController(nil, nop),
		pendingAction: controllers.NewPendingActionController(nil, nop),
		maintenance:   controllers.NewMaintenanceController(nil, nop),
		websocket:     controllers.NewWebSocketController(nil, jwtSvc, denyList, nop),
	}, authMW)

	return &routerFixture{e: e, jwtSvc: jwtSvc, denyList: denyList}
}

func (f *routerFixture) token(t *testing.T, userID uint64, isAdmin bool) string {
	t.Helper()
	access, _, err := f.jwtSvc.GenerateTokens(userID, isAdmin)
	require.NoError(t, err)
	return access
}

func (f *routerFixture) do(method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_AdminGating(t *testing.T) {
	f := newRouterFixture(t)
	user := f.token(t, 5, false)
	admin := f.token(t, 1, true)

	tests := []struct {
		method    string
		path      string
		userCode  int
		adminCode int
	}{
		{http.MethodPut, "/api/assets/abc", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodDelete, "/api/assets/abc", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodPost, "/api/assets/abc/image", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodDelete, "/api/assets/abc/image", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodPost, "/api/offices", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodPut, "/api/offices/abc", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodDelete, "/api/divisions/abc", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodPost, "/api/pending-actions/abc/approve", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodPost, "/api/pending-actions/abc/reject", http.StatusForbidden, http.StatusBadRequest},
		{http.MethodGet, "/api/assets/abc", http.StatusBadRequest, http.StatusBadRequest},
		{http.MethodPost, "/api/assets/abc/delete-request", http.StatusBadRequest, http.StatusBadRequest},
		{http.MethodPost, "/api/assets/abc/update-request", http.StatusBadRequest, http.StatusBadRequest},
		{http.MethodGet, "/api/pending-actions/abc", http.StatusBadRequest, http.StatusBadRequest},
		{http.MethodDelete, "/api/maintenances/abc", http.StatusBadRequest, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, f.do(tt.method, tt.path, ""))
			assert.Equal(t, tt.userCode, f.do(tt.method, tt.path, user))
			assert.Equal(t, tt.adminCode, f.do(tt.method, tt.path, admin))
		})
	}
}

func TestRouter_AdminOnlyReports(t *testing.T) {
	f := newRouterFixture(t)
	user := f.token(t, 5, false)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/assets/export", user))
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/assets/evaluate-status", user))
}

func TestRouter_RevokedTokenIsRejected(t *testing.T) {
	f := newRouterFixture(t)
	access := f.token(t, 5, false)
	claims, err := f.jwtSvc.ValidateToken(access)
	require.NoError(t, err)

	require.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/assets/abc", access))
	require.NoError(t, f.denyList.Revoke(context.Background(), claims.ID, time.Hour))

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/assets/abc", access))
}

func TestRouter_WebSocketNeedsToken(t *testing.T) {
	f := newRouterFixture(t)
	_, refresh, err := f.jwtSvc.GenerateTokens(5, false)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/ws", ""))
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/ws?token=garbage", ""))
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/ws?token="+refresh, ""))
}
