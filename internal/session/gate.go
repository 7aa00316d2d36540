// Package session implements the gate every operator passes before the rest
// of the back-office is reachable.  It is a placeholder-grade check against
// one fixed credential pair, not a security boundary: there is no lockout,
// no attempt counting and no rate limiting, so a client may retry forever.
package session

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/iliyamo/vehicle-service-management/internal/utils"
)

// Gate holds the fixed credential.  The password is kept only as a bcrypt
// hash computed once at start.
type Gate struct {
	user string
	hash string
}

// NewGate hashes password with the given bcrypt cost.
func NewGate(user, password string, cost int) (*Gate, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, fmt.Errorf("session gate: empty operator user")
	}
	hash, err := utils.HashPassword(strings.TrimSpace(password), cost)
	if err != nil {
		return nil, fmt.Errorf("session gate: hash password: %w", err)
	}
	return &Gate{user: user, hash: hash}, nil
}

// User returns the operator name the gate admits.
func (g *Gate) User() string { return g.user }

// Check reports whether user and password exactly match the fixed pair.
// Surrounding whitespace is ignored, as the login form always trimmed it.
func (g *Gate) Check(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(user)), []byte(g.user)) == 1
	passOK := utils.VerifyPassword(g.hash, strings.TrimSpace(password))
	return userOK && passOK
}
