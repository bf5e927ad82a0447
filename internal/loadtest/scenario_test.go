package loadtest

import (
	"context"
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
	"pizza-mock/internal/mockrouter"
)

// ==========================
// Test Helpers
// ==========================

// newMockBackend serves the full fixture surface; the scenario treats it
// as site, service and factory at once.
func newMockBackend(t *testing.T) *httptest.Server {
	t.Helper()
	store := fixtures.NewStore()
	fixtures.SeedBasic(store)

	rt := mockrouter.New(
		logger.NewTestLogger(t),
		store,
		fixtures.NewMemorySessionStore(),
		mockrouter.NewTokenIssuer("load-secret"),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte("<html>JWT Pizza</html>"))
			return
		}
		rt.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestScenario(t *testing.T, url string, cfgOverride func(*config.LoadTestConfig)) *Scenario {
	t.Helper()
	cfg := config.LoadTestConfig{
		SiteURL:    url,
		ServiceURL: url,
		FactoryURL: url,
		Email:      "d@jwt.com",
		Password:   "a",
	}
	if cfgOverride != nil {
		cfgOverride(&cfg)
	}
	s := NewScenario(logger.NewTestLogger(t), httpclient.NewClient(5*time.Second), cfg)
	s.Sleep = func(context.Context, time.Duration) {}
	return s
}

// ==========================
// Scenario Tests
// ==========================

func TestScenario_Run(t *testing.T) {
	srv := newMockBackend(t)
	s := newTestScenario(t, srv.URL, nil)

	require.NoError(t, s.Run(context.Background()))
}

func TestScenario_LoginCheckpointAborts(t *testing.T) {
	srv := newMockBackend(t)
	s := newTestScenario(t, srv.URL, func(cfg *config.LoadTestConfig) {
		cfg.Password = "wrong"
	})

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login was not 200")
}

func TestScenario_OrderCheckpointAborts(t *testing.T) {
	// A service that accepts the login but rejects the order.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"3"},"token":"abcdef"}`))
	})
	mux.HandleFunc("/api/order", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := newTestScenario(t, srv.URL, nil)
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase pizza was not 200")
}

func TestScenario_UnreachableService(t *testing.T) {
	s := newTestScenario(t, "http://127.0.0.1:1", nil)
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login request failed")
}

// ==========================
// Runner Tests
// ==========================

func TestRunner_RampsAndIterates(t *testing.T) {
	srv := newMockBackend(t)
	s := newTestScenario(t, srv.URL, nil)

	stages := []Stage{
		{Target: 2, Duration: 700 * time.Millisecond},
		{Target: 0, Duration: 700 * time.Millisecond},
	}
	r := NewRunner(logger.NewTestLogger(t), s, stages, time.Second)

	require.NoError(t, r.Run(context.Background()))
	assert.Greater(t, r.Iterations(), int64(0), "virtual users must complete iterations")
	assert.Equal(t, int64(0), r.Failures())
}

func TestRunner_ContextCancel(t *testing.T) {
	srv := newMockBackend(t)
	s := newTestScenario(t, srv.URL, nil)

	stages := []Stage{{Target: 2, Duration: time.Hour}}
	r := NewRunner(logger.NewTestLogger(t), s, stages, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
