package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// ==================================================================
// Operaciones sobre /auth/v1
// ==================================================================

const authPrefix = "/auth/v1/"

func grant(kind string) url.Values { return url.Values{"grant_type": {kind}} }

// SignUp registra un usuario con email + password.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	body := map[string]any{"email": in.Email, "password": in.Password}
	if len(in.Metadata) > 0 {
		body["data"] = in.Metadata
	}
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: authPrefix + "signup", Body: body})
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := resp.Decode(&sess); err != nil {
		return nil, err
	}
	if sess.AccessToken != "" && sess.User != nil {
		return &SignUpResult{User: sess.User, Session: &sess}, nil
	}
	var u User
	if err := resp.Decode(&u); err != nil {
		return nil, err
	}
	return &SignUpResult{User: &u}, nil
}

// PasswordGrant autentica email+password. Un 400 del provider significa
// credenciales inválidas y se devuelve como (nil, nil); cualquier otro error
// se propaga.
func (c *Client) PasswordGrant(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	err := c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "token",
		Query:  grant("password"),
		Body:   map[string]string{"email": email, "password": password},
	}, &sess)
	if err != nil {
		if IsStatus(err, http.StatusBadRequest) {
			return nil, nil
		}
		return nil, err
	}
	if sess.User == nil || sess.User.ID == "" {
		return nil, errors.New("provider: password grant returned no user")
	}
	return &sess, nil
}

// SendMagicLink pide un link de acceso por email.
func (c *Client) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	var q url.Values
	if redirectTo != "" {
		q = url.Values{"redirect_to": {redirectTo}}
	}
	return c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "otp",
		Query:  q,
		Body:   map[string]any{"email": email, "create_user": true},
	}, nil)
}

// SendPhoneOTP envía un código por SMS.
func (c *Client) SendPhoneOTP(ctx context.Context, phone string) error {
	return c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "otp",
		Body:   map[string]any{"phone": phone, "channel": "sms"},
	}, nil)
}

// VerifyOTP canjea un código por una sesión.
func (c *Client) VerifyOTP(ctx context.Context, in OTPVerification) (*Session, error) {
	typ := in.Type
	if typ == "" {
		typ = "sms"
		if in.Phone == "" {
			typ = "email"
		}
	}
	body := map[string]any{"token": in.Token, "type": typ}
	if in.Phone != "" {
		body["phone"] = in.Phone
	}
	if in.Email != "" {
		body["email"] = in.Email
	}
	var sess Session
	if err := c.doJSON(ctx, Request{Method: http.MethodPost, Path: authPrefix + "verify", Body: body}, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// RequestPasswordReset dispara el email de recuperación.
func (c *Client) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	var q url.Values
	if redirectTo != "" {
		q = url.Values{"redirect_to": {redirectTo}}
	}
	return c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "recover",
		Query:  q,
		Body:   map[string]string{"email": email},
	}, nil)
}

// ConfirmPasswordReset fija la nueva password. token puede ser el access
// token que el link de recuperación entrega al front, o el token_hash del
// email; en el segundo caso se canjea primero por una sesión.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	bearer := token
	if strings.Count(token, ".") != 2 {
		var sess Session
		err := c.doJSON(ctx, Request{
			Method: http.MethodPost,
			Path:   authPrefix + "verify",
			Body:   map[string]string{"type": "recovery", "token_hash": token},
		}, &sess)
		if err != nil {
			return err
		}
		if sess.AccessToken == "" {
			return &ProviderError{Status: http.StatusBadRequest, Message: "recovery token did not yield a session"}
		}
		bearer = sess.AccessToken
	}
	return c.doJSON(ctx, Request{
		Method: http.MethodPut,
		Path:   authPrefix + "user",
		Body:   map[string]string{"password": password},
		Bearer: bearer,
	}, nil)
}

// AuthorizeURL arma la URL a la que el front redirige para iniciar OAuth.
// No hace I/O: el provider responde a esa URL con un redirect al IdP.
func (c *Client) AuthorizeURL(p AuthorizeParams) (string, error) {
	if strings.TrimSpace(p.Provider) == "" {
		return "", errors.New("provider: oauth provider is required")
	}
	q := url.Values{"provider": {p.Provider}}
	if p.RedirectTo != "" {
		q.Set("redirect_to", p.RedirectTo)
	}
	if p.Scopes != "" {
		q.Set("scopes", p.Scopes)
	}
	if p.CodeChallenge != "" {
		q.Set("code_challenge", p.CodeChallenge)
		method := p.CodeChallengeMethod
		if method == "" {
			method = "s256"
		}
		q.Set("code_challenge_method", method)
	}
	return c.URL(authPrefix+"authorize", q), nil
}

// ExchangeCode canjea el code del callback OAuth por una sesión.
func (c *Client) ExchangeCode(ctx context.Context, in CodeExchange) (*Session, error) {
	req := Request{Method: http.MethodPost, Path: authPrefix + "token"}
	if in.CodeVerifier != "" {
		req.Query = grant("pkce")
		req.Body = map[string]string{"auth_code": in.Code, "code_verifier": in.CodeVerifier}
	} else {
		body := map[string]string{"code": in.Code}
		if in.RedirectURI != "" {
			body["redirect_uri"] = in.RedirectURI
		}
		if in.Provider != "" {
			body["provider"] = in.Provider
		}
		req.Query = grant("authorization_code")
		req.Body = body
	}
	var sess Session
	if err := c.doJSON(ctx, req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// IDTokenGrant canjea un id_token de un IdP (Google) por una sesión.
func (c *Client) IDTokenGrant(ctx context.Context, idp, idToken, nonce string) (*Session, error) {
	body := map[string]string{"id_token": idToken, "provider": idp}
	if nonce != "" {
		body["nonce"] = nonce
	}
	var sess Session
	err := c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "token",
		Query:  grant("id_token"),
		Body:   body,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// RefreshGrant rota un refresh token del provider.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*Session, error) {
	var sess Session
	err := c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   authPrefix + "token",
		Query:  grant("refresh_token"),
		Body:   map[string]string{"refresh_token": refreshToken},
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout revoca la sesión del bearer dado.
func (c *Client) Logout(ctx context.Context, bearer string) error {
	if bearer == "" {
		return errors.New("provider: logout requires the caller's token")
	}
	return c.doJSON(ctx, Request{Method: http.MethodPost, Path: authPrefix + "logout", Bearer: bearer}, nil)
}

// GetUser devuelve la identidad dueña del bearer ("who am I").
func (c *Client) GetUser(ctx context.Context, bearer string) (*User, error) {
	if bearer == "" {
		return nil, errors.New("provider: get user requires the caller's token")
	}
	var u User
	if err := c.doJSON(ctx, Request{Method: http.MethodGet, Path: authPrefix + "user", Bearer: bearer}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminGetUser busca un usuario por id con la key de servicio.
func (c *Client) AdminGetUser(ctx context.Context, id string) (*User, error) {
	var u User
	err := c.doJSON(ctx, Request{
		Method: http.MethodGet,
		Path:   authPrefix + "admin/users/" + url.PathEscape(id),
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminUpdateUserMetadata mergea metadata en user_metadata.
func (c *Client) AdminUpdateUserMetadata(ctx context.Context, id string, metadata map[string]any) (*User, error) {
	var u User
	err := c.doJSON(ctx, Request{
		Method: http.MethodPut,
		Path:   authPrefix + "admin/users/" + url.PathEscape(id),
		Body:   map[string]any{"user_metadata": metadata},
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Health consulta GET /auth/v1/health (sin bearer de usuario).
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, Request{Method: http.MethodGet, Path: authPrefix + "health"}, nil)
}
