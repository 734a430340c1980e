package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	localSecret    = "local-secret-0123456789abcdef0123"
	providerSecret = "provider-secret-0123456789abcdef"
)

func testVerifier(t *testing.T, opts ...VerifierOption) *Verifier {
	t.Helper()
	strategies, err := DefaultStrategies(StrategyConfig{
		LocalSecret:    localSecret,
		LocalAlgorithm: "HS256",
		ProviderSecret: providerSecret,
	})
	require.NoError(t, err)
	v, err := NewVerifier(strategies, opts...)
	require.NoError(t, err)
	return v
}

func sign(t *testing.T, method jwtv5.SigningMethod, secret string, claims jwtv5.MapClaims) string {
	t.Helper()
	tk := jwtv5.NewWithClaims(method, claims)
	s, err := tk.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func kindOf(t *testing.T, err error) error {
	t.Helper()
	var ve *VerificationError
	require.True(t, errors.As(err, &ve), "expected *VerificationError, got %T: %v", err, err)
	return ve.Kind
}

func TestVerify_LocalToken(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, localSecret, jwtv5.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	p, err := v.Verify("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "user-123", p.SubjectID)
	assert.Equal(t, raw, p.RawToken)
	assert.Equal(t, StrategyLocal, p.Source)
}

func TestVerify_ProviderTokenWithAudienceAndIssuer(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, providerSecret, jwtv5.MapClaims{
		"sub":   "prov-1",
		"aud":   "authenticated",
		"iss":   "https://abc.supabase.co/auth/v1",
		"email": "ana@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	p, err := v.Verify("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", p.SubjectID)
	assert.Equal(t, StrategyProvider, p.Source)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, "authenticated", p.Role)
}

func TestVerify_BareTokenWithoutPrefix(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, localSecret, jwtv5.MapClaims{
		"sub": "user-1", "exp": time.Now().Add(time.Minute).Unix(),
	})
	p, err := v.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.SubjectID)

	p, err = v.Verify("bearer   " + raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.SubjectID)
}

func TestVerify_MissingToken(t *testing.T) {
	v := testVerifier(t)
	for _, h := range []string{"", "   ", "Bearer", "Bearer   "} {
		_, err := v.Verify(h)
		require.Error(t, err, "header %q", h)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", h)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	v := testVerifier(t)
	for _, h := range []string{
		"Bearer not.a.validtoken",
		"Bearer abc",
		"Bearer a.b",
		"Bearer a..c",
		"Bearer a.b.c.d",
		"Bearer eyJmb28iOiJiYXIifQ.e30.sig", // header sin alg
	} {
		_, err := v.Verify(h)
		require.Error(t, err, h)
		assert.Equal(t, ErrMalformedToken, kindOf(t, err), h)
	}
}

func TestVerify_UnknownSecretIsInvalidSignature(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, "some-other-secret", jwtv5.MapClaims{
		"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify("Bearer " + raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	var ve *VerificationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Reasons, 2)
	assert.Equal(t, StrategyLocal, ve.Reasons[0].Strategy)
	assert.Equal(t, StrategyProvider, ve.Reasons[1].Strategy)
}

func TestVerify_ExpiredRejectedRegardlessOfSecret(t *testing.T) {
	v := testVerifier(t)
	for _, secret := range []string{localSecret, providerSecret} {
		raw := sign(t, jwtv5.SigningMethodHS256, secret, jwtv5.MapClaims{
			"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := v.Verify("Bearer " + raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenExpired)
	}
}

func TestVerify_ExpiredWithForeignSecretIsInvalidSignature(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, "nope", jwtv5.MapClaims{
		"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_MissingExpIsRejected(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, localSecret, jwtv5.MapClaims{"sub": "user-1"})
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_MissingSubjectIsTerminal(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, localSecret, jwtv5.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Verify(raw)
	require.Error(t, err)
	assert.Equal(t, ErrMissingSubject, kindOf(t, err))
}

func TestVerify_AlgorithmOutsideStrategyIsRejected(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS512, localSecret, jwtv5.MapClaims{
		"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// none nunca se acepta
	unsigned, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, jwtv5.MapClaims{
		"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(unsigned + "x")
	assert.Error(t, err)
}

func TestVerify_LegacyLenientAcceptsOtherHMAC(t *testing.T) {
	strategies, err := DefaultStrategies(StrategyConfig{
		LocalSecret: localSecret, LocalAlgorithm: "HS256",
		ProviderSecret: providerSecret, LegacyLenient: true,
	})
	require.NoError(t, err)
	v, err := NewVerifier(strategies)
	require.NoError(t, err)

	raw := sign(t, jwtv5.SigningMethodHS512, providerSecret, jwtv5.MapClaims{
		"sub": "user-9", "exp": time.Now().Add(time.Hour).Unix(),
	})
	p, err := v.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, StrategyProvider, p.Source)
}

func TestVerify_OrderIsLocalFirst(t *testing.T) {
	// mismo secreto en ambas estrategias: gana siempre la primera
	v, err := NewVerifier([]Strategy{
		{Name: StrategyLocal, Secret: []byte("same"), Methods: []string{"HS256"}},
		{Name: StrategyProvider, Secret: []byte("same"), Methods: []string{"HS256"}},
	})
	require.NoError(t, err)
	raw := sign(t, jwtv5.SigningMethodHS256, "same", jwtv5.MapClaims{
		"sub": "u", "exp": time.Now().Add(time.Hour).Unix(),
	})
	for i := 0; i < 20; i++ {
		p, err := v.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, StrategyLocal, p.Source)
	}
	assert.Equal(t, []string{StrategyLocal, StrategyProvider}, v.Strategies())
}

func TestVerify_Clock(t *testing.T) {
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	v := testVerifier(t, WithClock(func() time.Time { return base }))
	raw := sign(t, jwtv5.SigningMethodHS256, localSecret, jwtv5.MapClaims{
		"sub": "u", "exp": base.Add(-5 * time.Second).Unix(),
	})
	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)

	lenient := testVerifier(t, WithClock(func() time.Time { return base }), WithLeeway(30*time.Second))
	p, err := lenient.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "u", p.SubjectID)
}

func TestNewVerifier_Validation(t *testing.T) {
	_, err := NewVerifier(nil)
	assert.Error(t, err)
	_, err = NewVerifier([]Strategy{{Name: "x", Methods: []string{"HS256"}}})
	assert.Error(t, err)

	_, err = DefaultStrategies(StrategyConfig{LocalSecret: "s", LocalAlgorithm: "RS256"})
	assert.Error(t, err)
	_, err = DefaultStrategies(StrategyConfig{LocalAlgorithm: "HS256"})
	assert.Error(t, err)

	only, err := DefaultStrategies(StrategyConfig{LocalSecret: "s"})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, []string{"HS256"}, only[0].Methods)
}

func TestVerificationError_MessageCarriesReasons(t *testing.T) {
	v := testVerifier(t)
	raw := sign(t, jwtv5.SigningMethodHS256, "x", jwtv5.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
	_, err := v.Verify(raw)
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "invalid_signature ("), msg)
	assert.Contains(t, msg, "local:")
	assert.Contains(t, msg, "provider:")
	assert.True(t, IsVerificationError(err))
}
