package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharebnb/service-reservation/internal/application"
	"github.com/sharebnb/service-reservation/internal/common/auth"
)

func newReservationRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	service := application.NewReservationService(nil, nil, nil, nil, nil, nil, nil, zap.NewNop())

	router := gin.New()
	NewReservationHandler(service).RegisterRoutes(&router.RouterGroup, jwtManager)
	return router, jwtManager
}

func TestReservationRoutes_RejectNonMemberRole(t *testing.T) {
	router, jwtManager := newReservationRouter(t)

	hostToken, err := jwtManager.GenerateAccessToken(uuid.New(), auth.RoleHost)
	require.NoError(t, err)

	id := uuid.New().String()
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/reservations"},
		{http.MethodGet, "/api/v1/reservations"},
		{http.MethodGet, "/api/v1/reservations/" + id},
		{http.MethodPatch, "/api/v1/reservations/" + id},
		{http.MethodPost, "/api/v1/reservations/" + id + "/cancel"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+hostToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestReservationRoutes_RejectMissingToken(t *testing.T) {
	router, _ := newReservationRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
