package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/api/handlers"
	"surge/internal/config"
	"surge/internal/graphql"
	"surge/internal/repository/document"
	"surge/internal/repository/memory"
	"surge/internal/repository/seed"
	"surge/internal/services"
)

func setupTestServer(t *testing.T) (*gin.Engine, *memory.Backend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewDefaultConfig()
	backend := memory.NewBackend()
	store, err := document.Open(context.Background(), backend, seed.Document())
	require.NoError(t, err)

	rnd := services.NewSeededRandomizer(11)
	ops := &handlers.Operations{
		PriceLocks:    services.NewPriceLockService(store, store, cfg.Pricing),
		Notifications: services.NewNotificationService(store, store, rnd),
		Surge:         services.NewSurgeService(store, cfg.Pricing, cfg.Heatmap.DefaultCity, rnd),
		Heatmap:       services.NewHeatmapService(store, cfg.Heatmap),
		Drivers:       services.NewDriverService(store, rnd, cfg.Subscriptions.DriverPositionCount, cfg.Heatmap.GeohashPrecision),
		Config:        cfg,
	}
	gqlRouter := graphql.NewRouter()
	ops.Register(gqlRouter)

	engine := gin.New()
	NewRouter(handlers.NewGraphQLHandler(gqlRouter)).Setup(engine)
	return engine, backend
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphql.Error            `json:"errors"`
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestOptionsPreflight(t *testing.T) {
	engine, _ := setupTestServer(t)

	for _, path := range []string{"/", "/graphql", "/graphql/mutations", "/graphql/subscriptions/notifications"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Zero(t, w.Body.Len(), path)
	}
}

func TestUnknownQuery(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodPost, "/graphql", `{"query":"query FooBar { foo }"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "Unknown query", env.Errors[0].Message)
	assert.Nil(t, env.Data)
}

func TestMalformedBodyIsUnknown(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodPost, "/graphql/mutations", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "Unknown mutation", env.Errors[0].Message)
}

func TestQueryNamesAreExact(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, _ := do(t, engine, http.MethodPost, "/", `{"query":"query GetSurgeDataExtra { surgeData { id } }"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := do(t, engine, http.MethodPost, "/", `{"query":"query GetSurgeData { surgeData { id } }","variables":{"city":"Chicago"}}`)
	require.Equal(t, http.StatusOK, code)
	var areas []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data["surgeData"], &areas))
	assert.Len(t, areas, 2)
}

func TestAnonymousQueryUsesRootField(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodPost, "/graphql", `{"query":"{ cities { name } }"}`)
	require.Equal(t, http.StatusOK, code)

	var cities []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data["cities"], &cities))
	assert.Len(t, cities, 3)
}

func TestLockSurgePrice(t *testing.T) {
	engine, _ := setupTestServer(t)

	body := `{"query":"mutation LockSurgePrice($routeId: String!, $multiplier: Float!) { lockSurgePrice(routeId: $routeId, multiplier: $multiplier) { success } }",
		"variables":{"routeId":"route-1","multiplier":1.2}}`
	code, env := do(t, engine, http.MethodPost, "/graphql/mutations", body)
	require.Equal(t, http.StatusOK, code, env.Errors)

	var res struct {
		Success   bool `json:"success"`
		PriceLock struct {
			ID           string  `json:"id"`
			LockedPrice  float64 `json:"lockedPrice"`
			CurrentPrice float64 `json:"currentPrice"`
			Savings      float64 `json:"savings"`
			Status       string  `json:"status"`
		} `json:"priceLock"`
	}
	require.NoError(t, json.Unmarshal(env.Data["lockSurgePrice"], &res))
	assert.True(t, res.Success)
	assert.Equal(t, 54.0, res.PriceLock.LockedPrice)
	assert.Equal(t, 81.0, res.PriceLock.CurrentPrice)
	assert.Equal(t, 27.0, res.PriceLock.Savings)
	assert.Equal(t, "active", res.PriceLock.Status)
	assert.True(t, strings.HasPrefix(res.PriceLock.ID, "lock-"))

	code, env = do(t, engine, http.MethodPost, "/graphql", `{"query":"query GetPriceLocks { priceLocks { id } }"}`)
	require.Equal(t, http.StatusOK, code)
	var locks []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data["priceLocks"], &locks))
	require.Len(t, locks, 1)
	assert.Equal(t, res.PriceLock.ID, locks[0]["id"])
}

func TestLockSurgePrice_InvalidMultiplier(t *testing.T) {
	engine, _ := setupTestServer(t)

	for _, vars := range []string{`{"multiplier":0}`, `{"multiplier":-1}`, `{"multiplier":"abc"}`} {
		code, env := do(t, engine, http.MethodPost, "/graphql/mutations",
			`{"operationName":"LockSurgePrice","variables":`+vars+`}`)
		assert.Equal(t, http.StatusBadRequest, code, vars)
		assert.Len(t, env.Errors, 1, vars)
	}
}

func TestMutation_WriteFailureIs500(t *testing.T) {
	engine, backend := setupTestServer(t)
	backend.FailSaves(errors.New("disk full"))

	code, env := do(t, engine, http.MethodPost, "/graphql/mutations", `{"query":"mutation ClearAllNotifications { clearAllNotifications { count } }"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, graphql.InternalErrorMessage, env.Errors[0].Message)

	backend.FailSaves(nil)
	_, env = do(t, engine, http.MethodPost, "/graphql", `{"query":"query GetNotifications { notifications { id } }"}`)
	var notifications []struct {
		Read bool `json:"read"`
	}
	require.NoError(t, json.Unmarshal(env.Data["notifications"], &notifications))
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	assert.Equal(t, 2, unread, "failed mutation must not change state")
}

func TestUpdateNotificationPreferences(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodPost, "/graphql/mutations",
		`{"operationName":"UpdateNotificationPreferences","variables":{"preferences":{"surgeAlerts":false}}}`)
	require.Equal(t, http.StatusOK, code)

	var prefs struct {
		NotificationPreferences map[string]interface{} `json:"notificationPreferences"`
	}
	require.NoError(t, json.Unmarshal(env.Data["updateNotificationPreferences"], &prefs))
	assert.Equal(t, false, prefs.NotificationPreferences["surgeAlerts"])
	assert.Equal(t, true, prefs.NotificationPreferences["priceLockReminders"])

	code, _ = do(t, engine, http.MethodPost, "/graphql/mutations",
		`{"operationName":"UpdateNotificationPreferences","variables":{"preferences":"yes"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNotificationFlow(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodGet, "/graphql/subscriptions/notifications", "")
	require.Equal(t, http.StatusOK, code)
	var n struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data["notification"], &n))
	assert.Equal(t, "notif-2", n.ID)

	code, env = do(t, engine, http.MethodPost, "/graphql/mutations",
		`{"operationName":"MarkNotificationAsRead","variables":{"id":"notif-2"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"id":"notif-2"}`, string(env.Data["markNotificationAsRead"]))

	_, env = do(t, engine, http.MethodGet, "/graphql/subscriptions/notifications", "")
	require.NoError(t, json.Unmarshal(env.Data["notification"], &n))
	assert.Equal(t, "notif-1", n.ID)

	code, env = do(t, engine, http.MethodPost, "/graphql/mutations", `{"operationName":"ClearAllNotifications"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"count":4}`, string(env.Data["clearAllNotifications"]))
}

func TestSubscriptions(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodGet, "/graphql/subscriptions/surge-updates?routeId=route-3", "")
	require.Equal(t, http.StatusOK, code)
	var update struct {
		RouteID    string  `json:"routeId"`
		Multiplier float64 `json:"multiplier"`
	}
	require.NoError(t, json.Unmarshal(env.Data["surgeUpdate"], &update))
	assert.Equal(t, "route-3", update.RouteID)
	assert.GreaterOrEqual(t, update.Multiplier, 1.0)
	assert.LessOrEqual(t, update.Multiplier, 2.0)

	code, env = do(t, engine, http.MethodGet, "/graphql/subscriptions/driver-positions", "")
	require.Equal(t, http.StatusOK, code)
	var drivers []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data["driverPositions"], &drivers))
	assert.Len(t, drivers, 5)

	code, env = do(t, engine, http.MethodGet, "/graphql/subscriptions/weather", "")
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "Unknown subscription type", env.Errors[0].Message)
}

func TestDriverHeatmapQuery(t *testing.T) {
	engine, _ := setupTestServer(t)

	body := `{"query":"query GetDriverHeatmap { driverHeatmap { position value } }","variables":{"city":"San Francisco","date":"2024-03-15","timeframe":"Next Hour"}}`
	code, first := do(t, engine, http.MethodPost, "/graphql", body)
	require.Equal(t, http.StatusOK, code)
	_, second := do(t, engine, http.MethodPost, "/graphql", body)
	assert.JSONEq(t, string(first.Data["driverHeatmap"]), string(second.Data["driverHeatmap"]))

	code, _ = do(t, engine, http.MethodPost, "/graphql",
		`{"operationName":"GetDriverHeatmap","variables":{"date":"not-a-date"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPredictedSurgeQuery(t *testing.T) {
	engine, _ := setupTestServer(t)

	code, env := do(t, engine, http.MethodPost, "/graphql",
		`{"operationName":"GetPredictedSurgeData","variables":{"city":"New York","date":"2024-03-15T08:00:00Z","timeframe":"Next 3 Hours"}}`)
	require.Equal(t, http.StatusOK, code)
	var preds []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data["predictedSurgeData"], &preds))
	assert.Len(t, preds, 3)
}
