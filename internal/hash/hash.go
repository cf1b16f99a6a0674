package hash

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost mirrors the default bcrypt salt rounds.
const DefaultCost = 10

// ErrEmptyValue means there was nothing to hash.
var ErrEmptyValue = errors.New("value is required for hashing")

// Hasher wraps bcrypt with a fixed cost factor.
type Hasher struct {
	cost int
}

func New(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash produces a salted one-way hash of plain.
func (h Hasher) Hash(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", ErrEmptyValue
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plain matches hashed. It is fail-closed: any
// internal error, including a malformed hash, yields false rather than an
// error, so a verification-mechanism fault can never read as a match.
func (h Hasher) Compare(plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
