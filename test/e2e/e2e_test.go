// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-mock/internal/common/config"
	httpclient "pizza-mock/internal/common/http"
	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/fixtures"
	"pizza-mock/internal/loadtest"
	"pizza-mock/internal/mockrouter"
)

// ==========================
// Test Environment
// ==========================

type env struct {
	server *httptest.Server
	router *mockrouter.Router
}

func newEnv(t *testing.T, seed func(*fixtures.Store)) *env {
	t.Helper()
	store := fixtures.NewStore()
	seed(store)

	router := mockrouter.New(
		logger.NewTestLogger(t),
		store,
		fixtures.NewMemorySessionStore(),
		mockrouter.NewTokenIssuer("e2e-secret"),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &env{server: server, router: router}
}

func (e *env) call(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	dec := json.NewDecoder(resp.Body)
	// Some endpoints answer with arrays or null; callers that care
	// decode those themselves.
	_ = dec.Decode(&parsed)
	return resp.StatusCode, parsed
}

// ==========================
// Full Ordering Flow
// ==========================

func TestLoginAndOrderFlow(t *testing.T) {
	e := newEnv(t, fixtures.SeedBasic)

	// Log in as the diner.
	status, body := e.call(t, http.MethodPut, "/api/auth", map[string]string{
		"email": "d@jwt.com", "password": "a",
	}, "")
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// Pick two pizzas off the menu and order them.
	status, body = e.call(t, http.MethodPost, "/api/order", map[string]interface{}{
		"franchiseId": 2,
		"storeId":     "4",
		"items": []map[string]interface{}{
			{"menuId": 1, "description": "Veggie", "price": 0.0038},
			{"menuId": 2, "description": "Pepperoni", "price": 0.0042},
		},
	}, token)
	require.Equal(t, http.StatusOK, status)

	order := body["order"].(map[string]interface{})
	items := order["items"].([]interface{})
	require.Len(t, items, 2)

	// The receipt totals 0.008 bitcoin, the sum of the two fixed prices.
	total := 0.0
	for _, it := range items {
		total += it.(map[string]interface{})["price"].(float64)
	}
	assert.InDelta(t, 0.008, total, 1e-9)

	// The proof of purchase verifies and carries the order back.
	jwt := body["jwt"].(string)
	status, body = e.call(t, http.MethodPost, "/api/order/verify", map[string]string{"jwt": jwt}, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "valid", body["message"])

	// History is visible while logged in.
	status, body = e.call(t, http.MethodGet, "/api/order", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "3", body["dinerId"])

	// Log out; history turns into a structured 401.
	status, _ = e.call(t, http.MethodDelete, "/api/auth", nil, token)
	require.Equal(t, http.StatusOK, status)

	status, body = e.call(t, http.MethodGet, "/api/order", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])

	assert.Equal(t, int64(0), e.router.UnhandledCount(), "every request must match a rule")
}

// ==========================
// Registration and Profile Edit
// ==========================

func TestRegisterUpdateRelogin(t *testing.T) {
	e := newEnv(t, fixtures.SeedDirectory)
	email := "user4242@jwt.com"

	status, body := e.call(t, http.MethodPost, "/api/auth", map[string]string{
		"name": "pizza diner", "email": email, "password": "diner",
	}, "")
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "16", user["id"], "directory holds fifteen users, so registration gets 16")
	id := user["id"].(string)

	// Rename through the profile editor.
	status, body = e.call(t, http.MethodPut, fmt.Sprintf("/api/user/%s", id), map[string]string{
		"name": "pizza dinerx",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pizza dinerx", body["user"].(map[string]interface{})["name"])

	// Log out, log back in with the unchanged credentials: the rename
	// survived.
	status, _ = e.call(t, http.MethodDelete, "/api/auth", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, body = e.call(t, http.MethodPut, "/api/auth", map[string]string{
		"email": email, "password": "diner",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pizza dinerx", body["user"].(map[string]interface{})["name"])
}

// ==========================
// Admin Directory Flow
// ==========================

func TestAdminDirectoryFlow(t *testing.T) {
	e := newEnv(t, fixtures.SeedDirectory)

	status, _ := e.call(t, http.MethodPut, "/api/auth", map[string]string{
		"email": "a@jwt.com", "password": "admin",
	}, "")
	require.Equal(t, http.StatusOK, status)

	// Page through the directory; the two pages cover all fifteen users
	// with no overlap.
	status, body := e.call(t, http.MethodGet, "/api/user?page=0&limit=10", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["more"])
	firstPage := body["users"].([]interface{})
	require.Len(t, firstPage, 10)

	status, body = e.call(t, http.MethodGet, "/api/user?page=1&limit=10", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["more"])
	secondPage := body["users"].([]interface{})
	require.Len(t, secondPage, 5)

	seen := map[string]bool{}
	for _, u := range append(firstPage, secondPage...) {
		id := u.(map[string]interface{})["id"].(string)
		assert.False(t, seen[id], "no user appears on both pages")
		seen[id] = true
	}

	// Remove a user and confirm the directory shrank.
	status, _ = e.call(t, http.MethodDelete, "/api/user/2", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, body = e.call(t, http.MethodGet, "/api/user?page=0&limit=20", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"].([]interface{}), 14)
}

// ==========================
// Load Scenario Against The Mock
// ==========================

func TestLoadScenarioAgainstMock(t *testing.T) {
	e := newEnv(t, fixtures.SeedBasic)

	cfg := config.LoadTestConfig{
		SiteURL:    e.server.URL,
		ServiceURL: e.server.URL,
		FactoryURL: e.server.URL,
		Email:      "d@jwt.com",
		Password:   "a",
	}
	scenario := loadtest.NewScenario(logger.NewTestLogger(t), httpclient.NewClient(5*time.Second), cfg)
	scenario.Sleep = func(context.Context, time.Duration) {}

	require.NoError(t, scenario.Run(context.Background()))
}
