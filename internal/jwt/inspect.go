package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Inspection es el resultado de Inspect. NO es una credencial: Claims viene
// de un decode sin verificar y sólo sirve para diagnosticar la estructura.
type Inspection struct {
	Header   map[string]any `json:"header"`
	Claims   map[string]any `json:"claims"`
	Verified bool           `json:"verified"`
	Strategy string         `json:"strategy,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Inspect decodifica el token sin confiar en él e informa si alguna
// estrategia lo validaría. Nunca devuelve un Principal: no debe usarse
// para autorizar nada.
func (v *Verifier) Inspect(rawHeader string) (*Inspection, error) {
	raw, err := ExtractToken(rawHeader)
	if err != nil {
		return nil, err
	}
	hdr, err := parseHeader(raw)
	if err != nil {
		return nil, fail(ErrMalformedToken, StrategyFailure{Strategy: "parse", Err: err})
	}
	claims := jwtv5.MapClaims{}
	if _, _, err := jwtv5.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fail(ErrMalformedToken, StrategyFailure{Strategy: "parse", Err: err})
	}

	out := &Inspection{Header: hdr, Claims: map[string]any(claims)}
	p, verr := v.Verify(raw)
	switch {
	case verr == nil:
		out.Verified = true
		out.Strategy = p.Source
	default:
		var ve *VerificationError
		if errors.As(verr, &ve) {
			out.Error = ve.Kind.Error()
		} else {
			out.Error = verr.Error()
		}
	}
	return out, nil
}
