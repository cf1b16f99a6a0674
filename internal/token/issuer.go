package token

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pair is an access/refresh token couple issued together for one session.
// The expiry timestamps are read back from the freshly signed tokens and are
// nil when no expiration was embedded.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  *time.Time
	RefreshExpiresAt *time.Time
}

// Issuer builds token pairs from one payload using two independent secrets
// and lifetimes. It performs no persistence; storing the refresh token on
// the user record is the caller's responsibility.
type Issuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrSecretMissing
	}
	return &Issuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// Issue signs the two tokens concurrently; the signs are independent and
// order does not matter. Each token carries its own jti claim so that two
// pairs issued for the same payload within the same second still rotate to
// distinct token strings.
func (i *Issuer) Issue(payload Payload) (*Pair, error) {
	var g errgroup.Group
	var access, refresh string

	g.Go(func() error {
		signed, err := Sign(withTokenID(payload), i.accessSecret, i.accessTTL)
		access = signed
		return err
	})
	g.Go(func() error {
		signed, err := Sign(withTokenID(payload), i.refreshSecret, i.refreshTTL)
		refresh = signed
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  ExpiresAt(access),
		RefreshExpiresAt: ExpiresAt(refresh),
	}, nil
}

func withTokenID(payload Payload) Payload {
	claims := Payload{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["jti"] = uuid.NewString()
	return claims
}
