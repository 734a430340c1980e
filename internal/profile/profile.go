package profile

import (
	"context"
	"errors"
	"time"
)

// Profile es la fila 1:1 con la identidad del provider. Se crea al primer
// read y nunca se borra desde este servicio.
type Profile struct {
	ID          string     `json:"id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	AvatarURL   *string    `json:"avatar_url"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Patch: sólo los campos no-nil se escriben.
type Patch struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Empty reporta si el patch no toca ningún campo.
func (p Patch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.PhoneNumber == nil && p.AvatarURL == nil
}

// columns devuelve columna -> valor de los campos presentes, en orden fijo.
func (p Patch) columns() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("first_name", p.FirstName)
	add("last_name", p.LastName)
	add("phone_number", p.PhoneNumber)
	add("avatar_url", p.AvatarURL)
	return cols, vals
}

// ErrUnavailable: la fila no existe ni después de crearla (RLS, tabla mal configurada).
var ErrUnavailable = errors.New("profile: row unavailable after create")

// Store persiste perfiles. bearer es el token del llamador para backends
// que aplican RLS (REST); los backends directos lo ignoran.
type Store interface {
	// Get devuelve (nil, nil) si no hay fila.
	Get(ctx context.Context, id, bearer string) (*Profile, error)
	// Create inserta una fila; si ya existe no es error.
	Create(ctx context.Context, p Profile, bearer string) error
	Update(ctx context.Context, id string, patch Patch, at time.Time, bearer string) error
}
