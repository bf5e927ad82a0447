package mockrouter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/fixtures"
)

// ==========================
// Test Helpers
// ==========================

func newTestRouter(t *testing.T, seed func(*fixtures.Store)) *Router {
	t.Helper()
	store := fixtures.NewStore()
	if seed != nil {
		seed(store)
	}
	return New(
		logger.NewTestLogger(t),
		store,
		fixtures.NewMemorySessionStore(),
		NewTokenIssuer("test-secret"),
	)
}

func doRequest(t *testing.T, rt *Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func loginAs(t *testing.T, rt *Router, email, password string) map[string]interface{} {
	t.Helper()
	rec := doRequest(t, rt, http.MethodPut, "/api/auth", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login must succeed: %s", rec.Body.String())
	return decodeBody(t, rec)
}

// ==========================
// Dispatch Tests
// ==========================

func TestRouter_UnmatchedRequest(t *testing.T) {
	rt := newTestRouter(t, fixtures.SeedBasic)

	rec := doRequest(t, rt, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "unhandled request")
	assert.Equal(t, int64(1), rt.UnhandledCount())
}

func TestRouter_MethodMismatchIsUnhandled(t *testing.T) {
	rt := newTestRouter(t, fixtures.SeedBasic)

	// PATCH has no rule anywhere on the auth path.
	rec := doRequest(t, rt, http.MethodPatch, "/api/auth", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(1), rt.UnhandledCount())
}

func TestRouter_SpecificRuleWinsOverPrefix(t *testing.T) {
	rt := newTestRouter(t, fixtures.SeedBasic)
	loginAs(t, rt, "d@jwt.com", "a")

	// /api/user/me must hit the session rule, not the :id update rule.
	rec := doRequest(t, rt, http.MethodGet, "/api/user/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "d@jwt.com", body["email"])

	// /api/order/menu must not be swallowed by the order-history rule.
	rec = doRequest(t, rt, http.MethodGet, "/api/order/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var menu []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	assert.Len(t, menu, 2)

	assert.Equal(t, int64(0), rt.UnhandledCount())
}

func BenchmarkDispatchMenu(b *testing.B) {
	store := fixtures.NewStore()
	fixtures.SeedBasic(store)
	rt := New(
		logger.NewNoOpLogger(),
		store,
		fixtures.NewMemorySessionStore(),
		NewTokenIssuer("bench-secret"),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/order/menu", nil)
		rt.ServeHTTP(httptest.NewRecorder(), req)
	}
}
