package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", digest)

	require.True(t, CheckPassword("correct horse battery staple", digest))
	require.False(t, CheckPassword("wrong password", digest))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	first, err := HashPassword("samepassword")
	require.NoError(t, err)
	second, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, CheckPassword("samepassword", first))
	require.True(t, CheckPassword("samepassword", second))
}
