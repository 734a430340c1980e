// Package auth contiene DTOs para endpoints de autenticación.
package auth

// SignUpRequest es el alta con email + password y datos de perfil.
type SignUpRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
}

// LoginRequest acepta JSON (email) o el formulario OAuth2 password (username).
type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type MagicLinkRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RedirectTo string `json:"redirect_to,omitempty" validate:"omitempty,url"`
}

type PhoneLoginRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type PhoneVerifyRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Token string `json:"token" validate:"required,max=16"`
}

type PasswordResetRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RedirectTo string `json:"redirect_to,omitempty" validate:"omitempty,url"`
}

// PasswordResetConfirm: Token es el access token del link de recuperación
// o el token_hash del email.
type PasswordResetConfirm struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// OAuthCallbackRequest: con CodeVerifier se usa PKCE.
type OAuthCallbackRequest struct {
	Code         string `json:"code" validate:"required"`
	CodeVerifier string `json:"code_verifier,omitempty"`
	RedirectURI  string `json:"redirect_uri,omitempty" validate:"omitempty,url"`
	Provider     string `json:"provider,omitempty" validate:"omitempty,alphanum"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
	Nonce   string `json:"nonce,omitempty"`
}
