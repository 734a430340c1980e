package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// Service implementa read-con-creación y update de perfiles sobre un Store.
// No serializa nada en proceso: la unicidad queda del lado del Store.
type Service struct {
	store  Store
	emails *EmailResolver
	now    func() time.Time
}

// NewService: emails puede ser nil (Me devuelve email null salvo claim).
func NewService(store Store, emails *EmailResolver) *Service {
	return &Service{store: store, emails: emails, now: time.Now}
}

// Emails expone el resolver configurado.
func (s *Service) Emails() *EmailResolver { return s.emails }

// Get devuelve el perfil de subjectID; si no existe lo crea vacío y lo relee.
// Llamadas concurrentes para el mismo sujeto convergen en una sola fila.
func (s *Service) Get(ctx context.Context, subjectID, bearer string) (*Profile, error) {
	p, err := s.store.Get(ctx, subjectID, bearer)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	logger.From(ctx).Debug("profile missing, creating", logger.Subject(subjectID))
	if err := s.store.Create(ctx, Profile{ID: subjectID}, bearer); err != nil {
		return nil, fmt.Errorf("profile: create: %w", err)
	}
	p, err = s.store.Get(ctx, subjectID, bearer)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnavailable
	}
	return p, nil
}

// Update aplica patch (sólo campos presentes), marca updated_at y devuelve
// la fila resultante.
func (s *Service) Update(ctx context.Context, subjectID string, patch Patch, bearer string) (*Profile, error) {
	// asegura la fila antes del PATCH; un PATCH sobre cero filas no falla
	if _, err := s.Get(ctx, subjectID, bearer); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, subjectID, patch, s.now().UTC(), bearer); err != nil {
		return nil, fmt.Errorf("profile: update: %w", err)
	}
	p, err := s.store.Get(ctx, subjectID, bearer)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnavailable
	}
	return p, nil
}
