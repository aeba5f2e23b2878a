package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/pkg/errorx"
	"tourshop/internal/app/pkg/ginx"
	"tourshop/internal/app/pkg/jwtx"
	"tourshop/internal/app/pkg/logger"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), CORS(), ErrorHandler(logger.NewNop()))
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine()
	r.PUT("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newEngine()
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = logger.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", seen)
}

func TestErrorHandler(t *testing.T) {
	r := newEngine()
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/internal", func(c *gin.Context) { _ = c.Error(errors.New("db password wrong")) })
	r.GET("/business", func(c *gin.Context) { _ = c.Error(errorx.ErrOrderNotFound) })

	w := serve(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = serve(r, http.MethodGet, "/internal", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db password")

	w = serve(r, http.MethodGet, "/business", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "OrderNotFound")
}

func TestAuthGuardAndAdminOnly(t *testing.T) {
	issuer := jwtx.NewIssuer("mw-secret", time.Hour)
	r := newEngine()
	r.GET("/me", AuthGuard(issuer), func(c *gin.Context) {
		actor, ok := ginx.ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID})
	})
	r.GET("/admin", AuthGuard(issuer), AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	client, _, err := issuer.Issue(etprimitive.Actor{UserID: 5, Role: etprimitive.RoleCliente})
	require.NoError(t, err)
	admin, _, err := issuer.Issue(etprimitive.Actor{UserID: 1, Role: etprimitive.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "not.a.jwt").Code)

	w := serve(r, http.MethodGet, "/me", client)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", client).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", admin).Code)
}
