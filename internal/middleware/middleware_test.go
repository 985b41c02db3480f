package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "analyst",
		"exp": expires.Unix(),
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestAuth_DisabledWithoutSecret(t *testing.T) {
	r := newEngine(Auth(""))
	assert.Equal(t, http.StatusOK, get(r, "").Code)
}

func TestAuth(t *testing.T) {
	secret := "s3cret"
	r := newEngine(Auth(secret))
	valid := signed(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"wrong key", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"other algorithm", "Bearer " + signed(t, jwt.SigningMethodHS512, []byte(secret), time.Now().Add(time.Hour)), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(r, tt.header).Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(t.Context(), 2, time.Minute))

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	w := get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(RateLimit(t.Context(), 0, time.Minute))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "").Code)
	}
}

func TestRateLimit_Headers(t *testing.T) {
	r := newEngine(RateLimit(t.Context(), 1, time.Minute))

	w := get(r, "")
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 2, time.Minute)

	clock := time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	remaining, _, ok := rl.Take("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	clock = clock.Add(30 * time.Second)
	_, _, ok = rl.Take("1.2.3.4")
	assert.True(t, ok)

	_, wait, ok := rl.Take("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, wait)

	_, _, ok = rl.Take("5.6.7.8")
	assert.True(t, ok)

	clock = clock.Add(31 * time.Second)
	_, _, ok = rl.Take("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiter_SweeperStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rl := NewRateLimiter(ctx, 1, time.Hour)

	cancel()
	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatal("sweeper still running after cancel")
	}
}
