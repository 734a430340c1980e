package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_RoundTrip(t *testing.T) {
	iss, err := NewIssuer(localSecret, "HS256", 30*time.Minute)
	require.NoError(t, err)

	tok, exp, err := iss.Issue("user-123", 30*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	p, err := testVerifier(t).Verify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", p.SubjectID)
	assert.Equal(t, StrategyLocal, p.Source)
	assert.Equal(t, exp.Unix(), p.ExpiresAt.Unix())
}

func TestIssue_DeterministicWithFixedClock(t *testing.T) {
	now := time.Date(2031, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	iss, err := NewIssuer(localSecret, "HS256", time.Minute, WithIssuerClock(clock))
	require.NoError(t, err)

	a, expA, err := iss.Issue("s", 10*time.Minute)
	require.NoError(t, err)
	b, expB, err := iss.Issue("s", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, expA, expB)
	assert.Equal(t, now.Add(10*time.Minute), expA)
}

func TestIssue_DefaultTTLAndClaims(t *testing.T) {
	iss, err := NewIssuer(localSecret, "hs384", 5*time.Minute, WithIss("wizauth"))
	require.NoError(t, err)
	assert.Equal(t, "HS384", iss.Algorithm())

	tok, exp, err := iss.IssueWithClaims("user-1", 0, map[string]any{"email": "a@b.c", "sub": "spoof"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims := jwtv5.MapClaims{}
	_, err = jwtv5.Parse(tok, func(*jwtv5.Token) (any, error) { return []byte(localSecret), nil },
		jwtv5.WithValidMethods([]string{"HS384"}))
	require.NoError(t, err)
	_, _, err = jwtv5.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "a@b.c", claims["email"])
	assert.Equal(t, "wizauth", claims["iss"])
}

func TestIssue_Errors(t *testing.T) {
	_, err := NewIssuer("", "HS256", time.Minute)
	assert.Error(t, err)
	_, err = NewIssuer("s", "RS256", time.Minute)
	assert.Error(t, err)

	iss, err := NewIssuer("s", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, iss.AccessTTL)
	_, _, err = iss.Issue("  ", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSubject)
}
