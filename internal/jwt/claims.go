package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Claims cubre el layout de ambos dominios de firma: los tokens locales
// (sub/exp/iat) y los del provider, que agregan email, phone, role, etc.
type Claims struct {
	jwtv5.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Role         string         `json:"role,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Principal es el llamador autenticado. Vive lo que dura el request.
type Principal struct {
	SubjectID string
	RawToken  string
	// Source es el nombre de la estrategia que validó la firma (local | provider).
	Source    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

func principalFrom(raw, source string, c *Claims) *Principal {
	p := &Principal{
		SubjectID: c.Subject,
		RawToken:  raw,
		Source:    source,
		Email:     c.Email,
		Role:      c.Role,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
