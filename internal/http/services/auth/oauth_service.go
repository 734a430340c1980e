package auth

import (
	"context"
	"regexp"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// OAuthService cubre el flujo OAuth delegado al provider y el grant de
// id_token de Google.
type OAuthService interface {
	AuthorizeURL(ctx context.Context, idp, redirectTo, codeChallenge string) (*dto.OAuthURLResponse, error)
	Callback(ctx context.Context, in dto.OAuthCallbackRequest) (*dto.TokenResponse, error)
	Google(ctx context.Context, in dto.GoogleAuthRequest) (*dto.TokenResponse, error)
}

type oauthService struct {
	provider Gateway
	minter   *TokenMinter
}

func NewOAuthService(p Gateway, m *TokenMinter) OAuthService {
	return &oauthService{provider: p, minter: m}
}

var providerSlug = regexp.MustCompile(`^[a-z0-9_-]{2,32}$`)

func (s *oauthService) AuthorizeURL(_ context.Context, idp, redirectTo, codeChallenge string) (*dto.OAuthURLResponse, error) {
	if !providerSlug.MatchString(idp) {
		return nil, ErrInvalidProvider
	}
	if !helpers.ValidRedirect(redirectTo) {
		return nil, ErrInvalidRedirect
	}
	params := provider.AuthorizeParams{
		Provider:   idp,
		RedirectTo: redirectTo,
	}
	if codeChallenge != "" {
		params.CodeChallenge = codeChallenge
		params.CodeChallengeMethod = "s256"
	}
	u, err := s.provider.AuthorizeURL(params)
	if err != nil {
		return nil, err
	}
	return &dto.OAuthURLResponse{URL: u}, nil
}

func (s *oauthService) Callback(ctx context.Context, in dto.OAuthCallbackRequest) (*dto.TokenResponse, error) {
	sess, err := s.provider.ExchangeCode(ctx, provider.CodeExchange{
		Code:         in.Code,
		CodeVerifier: in.CodeVerifier,
		RedirectURI:  in.RedirectURI,
		Provider:     in.Provider,
	})
	if err != nil {
		return nil, err
	}
	return s.minter.FromSession(ctx, sess)
}

func (s *oauthService) Google(ctx context.Context, in dto.GoogleAuthRequest) (*dto.TokenResponse, error) {
	sess, err := s.provider.IDTokenGrant(ctx, "google", in.IDToken, in.Nonce)
	if err != nil {
		return nil, err
	}
	return s.minter.FromSession(ctx, sess)
}
