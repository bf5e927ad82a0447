package mockrouter

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pizza-mock/internal/models"
)

// TokenIssuer mints the opaque session tokens handed out at login and
// the JWT-shaped proof-of-purchase tokens attached to order receipts.
// The order token is header.payload.signature over base64url with an
// HMAC-SHA256 signature; it only needs to survive a round trip through
// the verify endpoint, nothing validates it against a real key set.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// SessionToken returns a fresh opaque token for a login or registration.
func (t *TokenIssuer) SessionToken() string {
	return uuid.NewString()
}

var tokenHeader = mustEncodeSegment(map[string]string{"alg": "HS256", "typ": "JWT"})

func mustEncodeSegment(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// OrderToken wraps the order in a signed proof-of-purchase token.
func (t *TokenIssuer) OrderToken(order models.Order) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"iat":   time.Now().Unix(),
		"order": order,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode order payload: %w", err)
	}
	body := tokenHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + t.sign(body), nil
}

// VerifyOrderToken checks the signature and returns the decoded payload.
func (t *TokenIssuer) VerifyOrderToken(token string) (map[string]interface{}, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed token: expected 3 segments, got %d", len(parts))
	}
	body := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(t.sign(body)), []byte(parts[2])) {
		return nil, fmt.Errorf("token signature mismatch")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse token payload: %w", err)
	}
	return payload, nil
}

func (t *TokenIssuer) sign(body string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
