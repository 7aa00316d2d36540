package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGate_Check(t *testing.T) {
	g, err := NewGate("admin", "admin", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, g.Check("admin", "admin"))
	assert.True(t, g.Check(" admin ", "admin\n"), "the form trims both fields")
	assert.False(t, g.Check("Admin", "admin"))
	assert.False(t, g.Check("admin", "Admin"))
	assert.False(t, g.Check("admin", ""))
	assert.False(t, g.Check("", "admin"))
	assert.False(t, g.Check("admin", "admin"+strings.Repeat("x", 80)))
}

func TestGate_RetriesAreUnlimited(t *testing.T) {
	g, err := NewGate("admin", "admin", bcrypt.MinCost)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.False(t, g.Check("admin", "wrong"))
	}
	assert.True(t, g.Check("admin", "admin"))
}

func TestNewGate_RejectsEmptyUser(t *testing.T) {
	_, err := NewGate("  ", "admin", bcrypt.MinCost)
	assert.Error(t, err)
}
