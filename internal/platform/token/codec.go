// Package token provides issuing and verification of signed access tokens,
// plus the Gin middleware that resolves a request's principal from them.
package token

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess is the value of the "type" claim stamped into every token
// this codec issues. Verification rejects tokens carrying any other type, so
// a future refresh-token class cannot be replayed as an access token.
const TokenTypeAccess = "access"

// DefaultExpiry is used when ACCESS_TOKEN_EXPIRE_MINUTES is unset (24 hours).
const DefaultExpiry = 24 * time.Hour

// Config holds the codec's signing configuration.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	Secret string        // HMAC signing secret
	Expiry time.Duration // lifetime of issued tokens
}

// LoadConfig は環境変数からトークン設定を読み込みます。
// JWT_SECRET が署名鍵、ACCESS_TOKEN_EXPIRE_MINUTES が有効期限（分）です。
func LoadConfig() Config {
	expiry := DefaultExpiry
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			expiry = time.Duration(minutes) * time.Minute
		}
	}
	return Config{
		Secret: os.Getenv("JWT_SECRET"),
		Expiry: expiry,
	}
}

// Codec signs and verifies compact, expiring identity tokens.
// Verification is stateless: no storage round-trip is needed.
type Codec struct {
	secret []byte
	expiry time.Duration
}

// NewCodec creates a new Codec with the provided signing secret and token lifetime.
func NewCodec(secret string, expiry time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue creates a signed token identifying the given user.
// The claim set is {sub, exp, iat, type:"access"}, signed with HS256.
func (c *Codec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"exp":  now.Add(c.expiry).Unix(),
		"iat":  now.Unix(),
		"type": TokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, expiry and token type of tokenStr.
// It returns the decoded claims and true on success, or nil and false on any
// failure (malformed encoding, bad signature, expired, wrong type).
// 不正なトークンでも呼び出し元にエラーは返しません。判断は常に (claims, ok) で行います。
func (c *Codec) Verify(tokenStr string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Only HMAC signatures are accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	if typ, _ := claims["type"].(string); typ != TokenTypeAccess {
		return nil, false
	}

	return claims, true
}

// ExpirySeconds returns the configured token lifetime in seconds, so callers
// can report it to clients alongside a freshly issued token.
func (c *Codec) ExpirySeconds() int {
	return int(c.expiry / time.Second)
}
