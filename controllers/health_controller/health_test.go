package health_controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestReadyz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	r := gin.New()
	r.GET("/healthz", Healthz)
	r.GET("/ready", Readyz(map[string]Check{"postgres": ok, "redis": ok}))
	r.GET("/degraded", Readyz(map[string]Check{"postgres": ok, "redis": down}))

	for path, want := range map[string]int{
		"/healthz":  http.StatusOK,
		"/ready":    http.StatusOK,
		"/degraded": http.StatusServiceUnavailable,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/degraded", nil))
	assert.Contains(t, w.Body.String(), "connection refused")
}
