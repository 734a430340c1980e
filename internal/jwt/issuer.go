package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Issuer firma los access tokens propios del servicio con el secreto local.
type Issuer struct {
	Iss       string        // "iss" opcional
	AccessTTL time.Duration // TTL por defecto (ACCESS_TOKEN_EXPIRE_MINUTES)

	method *jwtv5.SigningMethodHMAC
	secret []byte
	now    func() time.Time
}

// IssuerOption ajusta un Issuer (reloj, issuer).
type IssuerOption func(*Issuer)

// WithIssuerClock fija el reloj; con el mismo reloj y entradas el token es idéntico.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// WithIss agrega el claim "iss" a los tokens emitidos.
func WithIss(iss string) IssuerOption {
	return func(i *Issuer) { i.Iss = iss }
}

func NewIssuer(secret, alg string, ttl time.Duration, opts ...IssuerOption) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: issuer secret is required")
	}
	alg = strings.ToUpper(strings.TrimSpace(alg))
	if alg == "" {
		alg = "HS256"
	}
	m, ok := jwtv5.GetSigningMethod(alg).(*jwtv5.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported issuer algorithm %q", alg)
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	i := &Issuer{
		AccessTTL: ttl,
		method:    m,
		secret:    []byte(secret),
		now:       time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i, nil
}

// Algorithm devuelve el alg con el que firma ("HS256", ...).
func (i *Issuer) Algorithm() string { return i.method.Alg() }

// Issue emite {sub, iat, exp=now+ttl}. ttl <= 0 usa AccessTTL.
func (i *Issuer) Issue(sub string, ttl time.Duration) (string, time.Time, error) {
	return i.IssueWithClaims(sub, ttl, nil)
}

// IssueWithClaims es Issue con claims extra (ej: email). Los claims
// registrados (sub, iat, exp, iss) no se pueden pisar desde extra.
func (i *Issuer) IssueWithClaims(sub string, ttl time.Duration, extra map[string]any) (string, time.Time, error) {
	if strings.TrimSpace(sub) == "" {
		return "", time.Time{}, ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = i.AccessTTL
	}
	now := i.now().UTC()
	exp := now.Add(ttl)

	claims := jwtv5.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = sub
	claims["iat"] = now.Unix()
	claims["exp"] = exp.Unix()
	if i.Iss != "" {
		claims["iss"] = i.Iss
	}

	tk := jwtv5.NewWithClaims(i.method, claims)
	tk.Header["typ"] = "JWT"
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign access token: %w", err)
	}
	return signed, exp, nil
}
