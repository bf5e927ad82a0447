// Package mockrouter implements the fixture-backed HTTP surface that
// stands in for the real pizza backend during UI and load testing.
// Dispatch is an ordered rule table: first match wins, registration
// order is the precedence.
package mockrouter

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"sync/atomic"
	"time"

	"pizza-mock/internal/common/errors"
	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/common/metrics"
	"pizza-mock/internal/common/observability"
	"pizza-mock/internal/fixtures"
)

// params holds the capture groups of the matched path pattern.
type params []string

type handlerFunc func(w http.ResponseWriter, r *http.Request, p params)

type rule struct {
	method  string
	name    string
	pattern *regexp.Regexp
	handle  handlerFunc
}

// Router dispatches requests against the fixture store. One Router is
// built per test context or per mock-server instance.
type Router struct {
	log      logger.Logger
	store    *fixtures.Store
	sessions fixtures.SessionStore
	tokens   *TokenIssuer

	rules     []rule
	unhandled atomic.Int64
	obs       *observability.Observability
}

// New builds a Router over the given fixture store and session store.
func New(log logger.Logger, store *fixtures.Store, sessions fixtures.SessionStore, tokens *TokenIssuer) *Router {
	rt := &Router{
		log:      log,
		store:    store,
		sessions: sessions,
		tokens:   tokens,
	}
	rt.registerRules()
	return rt
}

// WithObservability attaches an OpenTelemetry recorder; requests are
// then reported there in addition to the Prometheus collectors.
func (rt *Router) WithObservability(obs *observability.Observability) *Router {
	rt.obs = obs
	return rt
}

// on appends a rule. More specific paths must be registered before the
// prefixes they extend.
func (rt *Router) on(method, name, pattern string, h handlerFunc) {
	rt.rules = append(rt.rules, rule{
		method:  method,
		name:    name,
		pattern: regexp.MustCompile(pattern),
		handle:  h,
	})
}

func (rt *Router) registerRules() {
	rt.on(http.MethodPut, "auth.login", `^/api/auth$`, rt.handleLogin)
	rt.on(http.MethodPost, "auth.register", `^/api/auth$`, rt.handleRegister)
	rt.on(http.MethodDelete, "auth.logout", `^/api/auth$`, rt.handleLogout)

	rt.on(http.MethodGet, "user.me", `^/api/user/me$`, rt.handleMe)
	rt.on(http.MethodPut, "user.update", `^/api/user/(\d+)$`, rt.handleUpdateUser)
	rt.on(http.MethodDelete, "user.delete", `^/api/user/(\d+)$`, rt.handleDeleteUser)
	rt.on(http.MethodGet, "user.list", `^/api/user$`, rt.handleListUsers)

	rt.on(http.MethodGet, "order.menu", `^/api/order/menu$`, rt.handleMenu)
	rt.on(http.MethodPost, "order.verify", `^/api/order/verify$`, rt.handleVerifyOrder)
	rt.on(http.MethodPost, "order.create", `^/api/order$`, rt.handleCreateOrder)
	rt.on(http.MethodGet, "order.history", `^/api/order$`, rt.handleOrderHistory)

	rt.on(http.MethodPost, "franchise.store.create", `^/api/franchise/(\d+)/store$`, rt.handleCreateStore)
	rt.on(http.MethodDelete, "franchise.store.delete", `^/api/franchise/(\d+)/store/(\d+)$`, rt.handleDeleteStore)
	rt.on(http.MethodGet, "franchise.byUser", `^/api/franchise/(\d+)$`, rt.handleUserFranchises)
	rt.on(http.MethodDelete, "franchise.delete", `^/api/franchise/(\d+)$`, rt.handleDeleteFranchise)
	rt.on(http.MethodGet, "franchise.list", `^/api/franchise$`, rt.handleListFranchises)
	rt.on(http.MethodPost, "franchise.create", `^/api/franchise$`, rt.handleCreateFranchise)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	for _, rl := range rt.rules {
		if rl.method != r.Method {
			continue
		}
		m := rl.pattern.FindStringSubmatch(r.URL.Path)
		if m == nil {
			continue
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rl.handle(rec, r, params(m[1:]))

		metrics.MockRequestsTotal.WithLabelValues(r.Method, rl.name, strconv.Itoa(rec.status)).Inc()
		metrics.MockRequestDuration.WithLabelValues(rl.name).Observe(time.Since(start).Seconds())
		if rt.obs != nil {
			rt.obs.RecordRequest(r.Context(), rl.name, rec.status)
			rt.obs.RecordRequestDuration(r.Context(), time.Since(start), rl.name)
		}
		rt.log.Debug("handled request", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"rule":   rl.name,
			"status": rec.status,
		})
		return
	}

	rt.unhandled.Add(1)
	metrics.MockRequestsUnhandled.WithLabelValues(r.Method).Inc()
	rt.log.Warn("no rule matched request", map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
	})
	rt.writeError(w, errors.NewUnhandledRouteError(r.Method, r.URL.Path))
}

// UnhandledCount reports how many requests matched no rule, so tests can
// assert the surface stayed fully mocked.
func (rt *Router) UnhandledCount() int64 {
	return rt.unhandled.Load()
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rt.log.WithError(err).Error("failed to encode response", nil)
	}
}

func (rt *Router) writeError(w http.ResponseWriter, apiErr *errors.APIError) {
	rt.writeJSON(w, apiErr.Status, apiErr.Body())
}

func unmarshalJSON(body []byte, v interface{}) error {
	return json.Unmarshal(body, v)
}
