package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Verifier autentica bearer tokens de origen desconocido (emitidos por este
// servicio o por el provider) probando las estrategias en orden fijo.
// Es seguro para uso concurrente: no tiene estado mutable.
type Verifier struct {
	strategies []Strategy
	now        func() time.Time
	leeway     time.Duration
}

// VerifierOption ajusta un Verifier.
type VerifierOption func(*Verifier)

// WithClock fija el reloj usado para exp/nbf.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// WithLeeway tolera desfasajes de reloj en exp/nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.leeway = d }
}

func NewVerifier(strategies []Strategy, opts ...VerifierOption) (*Verifier, error) {
	if len(strategies) == 0 {
		return nil, errors.New("jwt: at least one verification strategy is required")
	}
	for _, s := range strategies {
		if s.Name == "" || len(s.Secret) == 0 || len(s.Methods) == 0 {
			return nil, fmt.Errorf("jwt: strategy %q is incomplete", s.Name)
		}
	}
	v := &Verifier{
		strategies: append([]Strategy(nil), strategies...),
		now:        time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	return v, nil
}

// Strategies devuelve los nombres en orden de prueba.
func (v *Verifier) Strategies() []string {
	out := make([]string, len(v.strategies))
	for i, s := range v.strategies {
		out[i] = s.Name
	}
	return out
}

// Verify recibe el valor del header Authorization (con o sin "Bearer ") y
// devuelve el Principal o un *VerificationError:
//
//	vacío                       -> ErrMissingToken
//	estructura inválida         -> ErrMalformedToken (terminal)
//	firma ok pero sin sub       -> ErrMissingSubject (terminal)
//	firma ok pero vencido       -> ErrTokenExpired
//	ninguna estrategia valida   -> ErrInvalidSignature (+ motivos)
func (v *Verifier) Verify(rawHeader string) (*Principal, error) {
	raw, err := ExtractToken(rawHeader)
	if err != nil {
		return nil, err
	}
	if _, err := parseHeader(raw); err != nil {
		return nil, fail(ErrMalformedToken, StrategyFailure{Strategy: "parse", Err: err})
	}

	reasons := make([]StrategyFailure, 0, len(v.strategies))
	expired := false
	for _, s := range v.strategies {
		claims, err := s.Verify(raw, v.parserOptions()...)
		if err != nil {
			if errors.Is(err, jwtv5.ErrTokenExpired) {
				expired = true
			}
			reasons = append(reasons, StrategyFailure{Strategy: s.Name, Err: err})
			continue
		}
		if strings.TrimSpace(claims.Subject) == "" {
			return nil, fail(ErrMissingSubject, StrategyFailure{Strategy: s.Name, Err: errors.New("sub claim absent")})
		}
		return principalFrom(raw, s.Name, claims), nil
	}

	if expired {
		return nil, fail(ErrTokenExpired, reasons...)
	}
	return nil, fail(ErrInvalidSignature, reasons...)
}

func (v *Verifier) parserOptions() []jwtv5.ParserOption {
	opts := []jwtv5.ParserOption{jwtv5.WithTimeFunc(v.now)}
	if v.leeway > 0 {
		opts = append(opts, jwtv5.WithLeeway(v.leeway))
	}
	return opts
}

// ExtractToken quita el prefijo "Bearer " (case-insensitive) si está.
func ExtractToken(rawHeader string) (string, error) {
	s := strings.TrimSpace(rawHeader)
	if len(s) >= 7 && strings.EqualFold(s[:7], "bearer ") {
		s = strings.TrimSpace(s[7:])
	} else if strings.EqualFold(s, "bearer") {
		s = ""
	}
	if s == "" {
		return "", fail(ErrMissingToken)
	}
	return s, nil
}

// parseHeader valida la forma compacta (3 segmentos) y decodifica el header
// sin verificar nada. Sólo confirma que el token es estructuralmente parseable.
func parseHeader(raw string) (map[string]any, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token has %d segments, want 3", len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("segment %d is empty", i)
		}
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[0], "="))
	if err != nil {
		return nil, fmt.Errorf("header is not base64url: %w", err)
	}
	var hdr map[string]any
	if err := json.Unmarshal(b, &hdr); err != nil {
		return nil, fmt.Errorf("header is not JSON: %w", err)
	}
	if alg, _ := hdr["alg"].(string); alg == "" {
		return nil, errors.New("header has no alg")
	}
	return hdr, nil
}
