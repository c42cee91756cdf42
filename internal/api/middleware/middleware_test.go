package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter(manager *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), SessionMiddleware(manager, time.Hour, false, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		sess, ok := GetSessionFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": sess.ID, "cartKey": sess.CartKey})
	})
	return r
}

func TestSessionMiddleware_StartsAnonymousSession(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	r := newSessionRouter(manager)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(SessionHeader)
	assert.NotEmpty(t, id)

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookie {
			found = true
			assert.Equal(t, id, cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestSessionMiddleware_ExtendsReturningSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	manager := session.NewManager(store, time.Hour, zap.NewNop())
	r := newSessionRouter(manager)

	lastSeen := time.Now().Add(-10 * time.Minute)
	require.NoError(t, store.Save(ctx, &session.Session{
		ID:        "returning",
		CartKey:   "cart-1",
		CreatedAt: lastSeen,
		UpdatedAt: lastSeen,
		ExpiresAt: lastSeen.Add(time.Hour),
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "returning")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "returning", w.Header().Get(SessionHeader))

	touched, err := store.Get(ctx, "returning")
	require.NoError(t, err)
	assert.True(t, touched.ExpiresAt.After(lastSeen.Add(time.Hour)))
	assert.True(t, touched.UpdatedAt.After(lastSeen))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "returning")
	r.ServeHTTP(httptest.NewRecorder(), req)

	again, err := store.Get(ctx, "returning")
	require.NoError(t, err)
	assert.Equal(t, touched.UpdatedAt, again.UpdatedAt, "second request within a minute should not rewrite the session")
}

func TestSessionMiddleware_ReusesKnownSession(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	r := newSessionRouter(manager)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	id := first.Header().Get(SessionHeader)

	byHeader := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	byHeader.Header.Set(SessionHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, byHeader)
	assert.Equal(t, id, w.Header().Get(SessionHeader))

	byCookie := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	byCookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, byCookie)
	assert.Equal(t, id, w.Header().Get(SessionHeader))
}

func TestSessionMiddleware_UnknownIDGetsNewSession(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	r := newSessionRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "forged")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "forged", w.Header().Get(SessionHeader))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Body.String())
	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(metrics.New(reg)))
	r.GET("/v1/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/products/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := testutil.GatherAndCount(reg, "storefront_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
