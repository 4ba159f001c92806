package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := svc.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", subject)
}

func TestValidate_Expired(t *testing.T) {
	now := time.Now()
	svc := NewService("test-secret", time.Hour).WithClock(func() time.Time { return now })

	signed, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	// Move the clock past the validity window
	svc.WithClock(func() time.Time { return now.Add(2 * time.Hour) })

	_, err = svc.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	signed, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestMatchesSubject(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	require.True(t, svc.MatchesSubject(signed, "alice@example.com"))
	require.False(t, svc.MatchesSubject(signed, "bob@example.com"))
	require.False(t, svc.MatchesSubject("garbage", "alice@example.com"))
}

func TestIssue_FreshTokensAreIndependent(t *testing.T) {
	base := time.Now()
	svc := NewService("test-secret", time.Hour).WithClock(func() time.Time { return base })

	first, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return base.Add(time.Second) })
	second, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	// The earlier token stays valid; nothing is revoked.
	_, err = svc.Validate(first)
	require.NoError(t, err)
}
