package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pizza-mock/internal/common/config"
	httpclient "pizza-mock/internal/common/http"
	"pizza-mock/internal/common/logger"
)

// SleepFunc paces the scenario between steps. Tests replace it to run
// iterations without waiting.
type SleepFunc func(ctx context.Context, d time.Duration)

func contextSleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Scenario replays one recorded user session: open the home page, log
// in, browse the menu and franchise list, place an order, and verify the
// proof of purchase. Login and order placement are hard checkpoints; a
// non-200 on either aborts the iteration.
type Scenario struct {
	log    logger.Logger
	client *httpclient.Client
	cfg    config.LoadTestConfig

	// Sleep paces the steps; defaults to real, context-aware sleeping.
	Sleep SleepFunc
}

func NewScenario(log logger.Logger, client *httpclient.Client, cfg config.LoadTestConfig) *Scenario {
	return &Scenario{
		log:    log,
		client: client,
		cfg:    cfg,
		Sleep:  contextSleep,
	}
}

// Run executes one iteration of the scenario.
func (s *Scenario) Run(ctx context.Context) error {
	// Home page. The body is irrelevant; this warms the site like a
	// browser navigation would.
	if _, _, err := s.client.DoJSON(ctx, http.MethodGet, s.cfg.SiteURL+"/", nil, ""); err != nil {
		s.log.WithError(err).Warn("home page request failed", nil)
	}
	s.Sleep(ctx, 3*time.Second)

	// Log in. Hard checkpoint.
	loginBody := map[string]string{"email": s.cfg.Email, "password": s.cfg.Password}
	status, body, err := s.client.DoJSON(ctx, http.MethodPut, s.cfg.ServiceURL+"/api/auth", loginBody, "")
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("login was not 200: got %d: %s", status, body)
	}
	token, err := extractString(body, "token")
	if err != nil {
		return fmt.Errorf("login response missing token: %w", err)
	}
	s.Sleep(ctx, time.Second)

	// Menu.
	if _, _, err := s.client.DoJSON(ctx, http.MethodGet, s.cfg.ServiceURL+"/api/order/menu", nil, token); err != nil {
		s.log.WithError(err).Warn("menu request failed", nil)
	}

	// Franchise list, the way the store selector queries it.
	franchiseURL := s.cfg.ServiceURL + "/api/franchise?page=0&limit=20&name=*"
	if _, _, err := s.client.DoJSON(ctx, http.MethodGet, franchiseURL, nil, token); err != nil {
		s.log.WithError(err).Warn("franchise request failed", nil)
	}
	s.Sleep(ctx, 2*time.Second)

	// Profile.
	if _, _, err := s.client.DoJSON(ctx, http.MethodGet, s.cfg.ServiceURL+"/api/user/me", nil, token); err != nil {
		s.log.WithError(err).Warn("profile request failed", nil)
	}
	s.Sleep(ctx, time.Second)

	// Purchase pizza. Hard checkpoint.
	orderBody := map[string]interface{}{
		"items":       []map[string]interface{}{{"menuId": 1, "description": "Veggie", "price": 0.0038}},
		"storeId":     "1",
		"franchiseId": 1,
	}
	status, body, err = s.client.DoJSON(ctx, http.MethodPost, s.cfg.ServiceURL+"/api/order", orderBody, token)
	if err != nil {
		return fmt.Errorf("order request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("purchase pizza was not 200: got %d: %s", status, body)
	}
	jwt, err := extractString(body, "jwt")
	if err != nil {
		return fmt.Errorf("order response missing jwt: %w", err)
	}
	s.Sleep(ctx, time.Second)

	// Verify pizza against the factory.
	verifyURL := s.cfg.FactoryURL + "/api/order/verify"
	if _, _, err := s.client.DoJSON(ctx, http.MethodPost, verifyURL, map[string]string{"jwt": jwt}, token); err != nil {
		s.log.WithError(err).Warn("verify request failed", nil)
	}

	return nil
}

func extractString(body []byte, key string) (string, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	val, ok := parsed[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("no %q field in response", key)
	}
	return val, nil
}
