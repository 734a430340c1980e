package provider

import "time"

// User es la identidad tal como la devuelve /auth/v1 (GoTrue).
type User struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud,omitempty"`
	Role             string         `json:"role,omitempty"`
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	PhoneConfirmedAt *time.Time     `json:"phone_confirmed_at,omitempty"`
	LastSignInAt     *time.Time     `json:"last_sign_in_at,omitempty"`
	CreatedAt        *time.Time     `json:"created_at,omitempty"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
	AppMetadata      map[string]any `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

// Session es la respuesta de los grants de /auth/v1/token y /verify.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// SignUpResult: con confirmación de email pendiente el provider devuelve sólo
// el usuario; si no, devuelve una sesión completa.
type SignUpResult struct {
	User    *User
	Session *Session
}

// SignUpInput son los datos de alta; Metadata viaja como user_metadata.
type SignUpInput struct {
	Email    string
	Password string
	Metadata map[string]any
}

// OTPVerification verifica un código enviado por SMS o email.
type OTPVerification struct {
	Phone string
	Email string
	Token string
	// Type: sms | email | magiclink | recovery | signup. Default sms si hay Phone.
	Type string
}

// CodeExchange canjea el code del callback OAuth. Con CodeVerifier se usa
// el grant PKCE; sin él, authorization_code con RedirectURI.
type CodeExchange struct {
	Code         string
	CodeVerifier string
	RedirectURI  string
	Provider     string
}

// AuthorizeParams arma la URL de inicio del flujo OAuth.
type AuthorizeParams struct {
	Provider            string
	RedirectTo          string
	Scopes              string
	CodeChallenge       string
	CodeChallengeMethod string
}
