package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSecretMissing means the caller asked for a signature without a key.
	ErrSecretMissing = errors.New("jwt secret missing")
	// ErrInvalidToken covers malformed tokens, bad signatures and expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Payload is the claim set carried inside a token. The codec treats it as
// opaque; issuers decide its contents (minimally a "uid" key).
type Payload map[string]any

// VerifyOptions tweaks claim validation during Verify.
type VerifyOptions struct {
	IgnoreExpiration bool
}

// Sign produces a compact HS256 token embedding payload plus iat/exp claims.
// expiresIn is relative to now; zero or negative yields an already-expired
// token.
func Sign(payload Payload, secret string, expiresIn time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSecretMissing
	}

	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(expiresIn).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its payload.
// It does not judge whether the payload is semantically meaningful; that is
// the caller's job.
func Verify(tokenString, secret string, opts ...VerifyOptions) (Payload, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}

	var options VerifyOptions
	if len(opts) > 0 {
		options = opts[0]
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if options.IgnoreExpiration {
		parserOpts = append(parserOpts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, parserOpts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return Payload(claims), nil
}

// Decode parses the payload WITHOUT verifying the signature and returns nil
// on any malformed input. Never use the result for authorization decisions.
func Decode(tokenString string) Payload {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	return Payload(claims)
}

// ExpiresAt reads the exp claim of a token without verification. Nil when
// the token is malformed or carries no expiration.
func ExpiresAt(tokenString string) *time.Time {
	payload := Decode(tokenString)
	if payload == nil {
		return nil
	}
	exp, ok := payload["exp"].(float64)
	if !ok {
		return nil
	}
	at := time.Unix(int64(exp), 0)
	return &at
}
