package profile

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// Me es la vista de /users/me: identidad del provider + perfil.
type Me struct {
	ID               string     `json:"id"`
	Email            *string    `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role,omitempty"`
	IsVerified       bool       `json:"is_verified"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	PhoneNumber      *string    `json:"phone_number"`
	AvatarURL        *string    `json:"avatar_url"`
}

// Me trae identidad y perfil en paralelo y los combina. La identidad es
// best-effort (el email puede quedar null); el perfil no.
func (s *Service) Me(ctx context.Context, p *jwt.Principal) (*Me, error) {
	var (
		prof *Profile
		user *provider.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prof, err = s.Get(gctx, p.SubjectID, BearerFor(p))
		return err
	})
	if s.emails != nil {
		g.Go(func() error {
			user, _ = s.emails.Identity(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(p, user, prof), nil
}

// BearerFor devuelve el token a reenviar a un Store con RLS. Sólo los tokens
// del provider le sirven al provider; con un token local se usa la key de
// servicio ("").
func BearerFor(p *jwt.Principal) string {
	if p == nil || p.Source == jwt.StrategyLocal {
		return ""
	}
	return p.RawToken
}

func merge(p *jwt.Principal, u *provider.User, prof *Profile) *Me {
	out := &Me{ID: p.SubjectID, Role: p.Role}

	email := Unknown
	if p.Email != "" {
		email = EmailResult{Email: p.Email, Known: true, Source: EmailFromClaim}
	}
	if u != nil {
		if !email.Known && u.Email != "" {
			email = EmailResult{Email: u.Email, Known: true, Source: EmailFromProvider}
		}
		out.Phone = u.Phone
		if u.Role != "" {
			out.Role = u.Role
		}
		out.EmailConfirmedAt = u.EmailConfirmedAt
		out.IsVerified = u.EmailConfirmedAt != nil || u.PhoneConfirmedAt != nil
		out.LastLogin = u.LastSignInAt
		out.CreatedAt = u.CreatedAt
	}
	out.Email = email.Ptr()

	if prof != nil {
		out.FirstName = prof.FirstName
		out.LastName = prof.LastName
		out.PhoneNumber = prof.PhoneNumber
		out.AvatarURL = prof.AvatarURL
		out.UpdatedAt = prof.UpdatedAt
		if out.CreatedAt == nil {
			out.CreatedAt = prof.CreatedAt
		}
	}
	return out
}
