package jwt

import (
	"errors"
	"fmt"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Nombres de las estrategias estándar, en el orden en que se prueban.
const (
	StrategyLocal    = "local"
	StrategyProvider = "provider"
)

// HMACMethods son los algoritmos soportados por ambos dominios de firma.
var HMACMethods = []string{"HS256", "HS384", "HS512"}

// Strategy es una forma de verificar un token: un secreto y los algoritmos
// aceptados con él. Verify es una función pura (token, secreto, alg) -> claims.
type Strategy struct {
	Name    string
	Secret  []byte
	Methods []string
}

// Verify valida firma + exp/nbf con el secreto de la estrategia.
// aud e iss no se verifican: los tokens llegan de dos emisores distintos.
func (s Strategy) Verify(raw string, opts ...jwtv5.ParserOption) (*Claims, error) {
	if len(s.Secret) == 0 {
		return nil, fmt.Errorf("strategy %s: empty secret", s.Name)
	}
	popts := append([]jwtv5.ParserOption{
		jwtv5.WithValidMethods(s.Methods),
		jwtv5.WithExpirationRequired(),
	}, opts...)

	claims := &Claims{}
	_, err := jwtv5.ParseWithClaims(raw, claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.Secret, nil
	}, popts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// StrategyConfig describe los secretos disponibles al armar el verificador.
type StrategyConfig struct {
	LocalSecret    string
	LocalAlgorithm string
	ProviderSecret string

	// LegacyLenient acepta cualquier HMAC en ambas estrategias.
	LegacyLenient bool
}

// DefaultStrategies arma la lista ordenada: primero el secreto local (caso
// más común y barato), después el del provider. El orden es parte del contrato.
func DefaultStrategies(cfg StrategyConfig) ([]Strategy, error) {
	alg := strings.ToUpper(strings.TrimSpace(cfg.LocalAlgorithm))
	if alg == "" {
		alg = "HS256"
	}
	if !isHMAC(alg) {
		return nil, fmt.Errorf("unsupported algorithm %q", alg)
	}
	if cfg.LocalSecret == "" {
		return nil, errors.New("local secret is required")
	}

	local := Strategy{Name: StrategyLocal, Secret: []byte(cfg.LocalSecret), Methods: []string{alg}}
	// El provider firma con HS256; se acepta además el algoritmo local como
	// hacía el servicio original (decodificaba ambos con JWT_ALGORITHM).
	providerMethods := []string{"HS256"}
	if alg != "HS256" {
		providerMethods = append(providerMethods, alg)
	}
	if cfg.LegacyLenient {
		local.Methods = HMACMethods
		providerMethods = HMACMethods
	}

	out := []Strategy{local}
	if cfg.ProviderSecret != "" {
		out = append(out, Strategy{Name: StrategyProvider, Secret: []byte(cfg.ProviderSecret), Methods: providerMethods})
	}
	return out, nil
}

func isHMAC(alg string) bool {
	for _, m := range HMACMethods {
		if m == alg {
			return true
		}
	}
	return false
}
