package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStoreWrite(t *testing.T) {
	ok := StoreWritesTotal.WithLabelValues("test", "ok")
	failed := StoreWritesTotal.WithLabelValues("test", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveStoreWrite("test", nil)
	ObserveStoreWrite("test", errors.New("boom"))
	ObserveStoreWrite("test", nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestObserveOperation(t *testing.T) {
	c := OperationsTotal.WithLabelValues("query", "GetCities", OutcomeOK)
	before := testutil.ToFloat64(c)

	ObserveOperation("query", "GetCities", OutcomeOK, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/metrics", Handler())

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `surge_http_requests_total{method="GET",path="/ping",status="204"}`))
}
