package auth

import "github.com/dropDatabas3/wizauth/internal/provider"

// TokenResponse es el contrato de emisión: siempre access_token + token_type.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"` // "bearer"
	ExpiresIn    int64        `json:"expires_in,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *UserSummary `json:"user,omitempty"`
}

// UserSummary es la parte de la identidad que acompaña a un token.
type UserSummary struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Phone string  `json:"phone,omitempty"`
}

func NewUserSummary(u *provider.User) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{ID: u.ID, Phone: u.Phone}
	if u.Email != "" {
		e := u.Email
		s.Email = &e
	}
	return s
}

type SignUpResponse struct {
	Message string         `json:"message"`
	User    *provider.User `json:"user"`
}

type OAuthURLResponse struct {
	URL string `json:"url"`
}
