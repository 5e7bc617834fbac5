// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogakzip/api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip checks that the exact original plaintext verifies
against its digest and nothing else does.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := sec.HashPassword("pw")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	// The digest must never equal the plaintext.
	assert.NotEqual(t, "pw", digest)

	assert.True(t, sec.CheckPasswordHash("pw", digest))
	assert.False(t, sec.CheckPasswordHash("PW", digest))
	assert.False(t, sec.CheckPasswordHash("pw ", digest))
	assert.False(t, sec.CheckPasswordHash("", digest))
}

/*
TestHashPassword_Salted checks that two hashes of the same plaintext differ,
proving a per-hash salt is in play.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same-secret")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-secret", first))
	assert.True(t, sec.CheckPasswordHash("same-secret", second))
}

/*
TestCheckPasswordHash_GarbageDigest ensures a malformed stored digest fails
closed rather than panicking.
*/
func TestCheckPasswordHash_GarbageDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("pw", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("pw", ""))
}
