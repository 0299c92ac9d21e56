package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soxutil/internal/security"
)

func TestHashPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret", hash)

	// Hashing is salted, so two hashes of the same input differ.
	other, err := security.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret")
	assert.NoError(t, err)

	assert.True(t, security.VerifyPassword("s3cret", hash))
	assert.False(t, security.VerifyPassword("wrong", hash))
	assert.False(t, security.VerifyPassword("", hash))
	assert.False(t, security.VerifyPassword("s3cret", "not-a-hash"))
}
