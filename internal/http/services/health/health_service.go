package health

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/health"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Live(ctx context.Context) dto.LivenessResponse
	Check(ctx context.Context) dto.HealthResponse
	Version() string
}

// CheckFunc es un ping de un componente.
type CheckFunc func(ctx context.Context) error

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Version   string
	TokenMode string
	Issuer    *jwt.Issuer
	Verifier  *jwt.Verifier
	// ProviderCheck es crítico: sin provider no hay login.
	ProviderCheck CheckFunc
	// ProfilesCheck sólo con driver postgres.
	ProfilesCheck CheckFunc
	// RedisCheck sólo con rate limit en redis.
	RedisCheck CheckFunc
	// Timeout por componente; default 2s.
	Timeout time.Duration
	now     func() time.Time
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	if deps.now == nil {
		deps.now = time.Now
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Version() string { return s.deps.Version }

func (s *healthService) Live(context.Context) dto.LivenessResponse {
	return dto.LivenessResponse{Status: "healthy"}
}

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Version:    s.deps.Version,
		TokenMode:  s.deps.TokenMode,
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  s.deps.now().UTC(),
	}

	hasErrors := false
	hasCriticalErrors := false

	// 1) Issuer + verifier (crítico): un token local debe verificarse
	if s.deps.Issuer != nil && s.deps.Verifier != nil {
		if err := s.selfCheck(); err != nil {
			response.Components["signer"] = dto.HealthStatus{Status: "error", Message: err.Error()}
			hasCriticalErrors = true
			log.Error("signer self-check failed", logger.Err(err))
		} else {
			response.Components["signer"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["signer"] = dto.HealthStatus{Status: "disabled"}
	}

	// 2) Provider (crítico)
	if st, failed := s.run(ctx, s.deps.ProviderCheck, "no provider check"); failed {
		response.Components["provider"] = st
		hasCriticalErrors = true
		log.Error("provider unavailable", logger.String("message", st.Message))
	} else {
		response.Components["provider"] = st
	}

	// 3) Profiles DB y Redis (no críticos)
	if st, failed := s.run(ctx, s.deps.ProfilesCheck, "rest driver"); failed {
		response.Components["profiles_db"] = st
		hasErrors = true
		log.Error("profiles db unavailable", logger.String("message", st.Message))
	} else {
		response.Components["profiles_db"] = st
	}
	if st, failed := s.run(ctx, s.deps.RedisCheck, "memory rate limiter"); failed {
		response.Components["redis"] = st
		hasErrors = true
		log.Error("redis unavailable", logger.String("message", st.Message))
	} else {
		response.Components["redis"] = st
	}

	switch {
	case hasCriticalErrors:
		response.Status = "unavailable"
	case hasErrors:
		response.Status = "degraded"
	default:
		response.Status = "ready"
	}
	return response
}

func (s *healthService) run(ctx context.Context, check CheckFunc, disabledMsg string) (dto.HealthStatus, bool) {
	if check == nil {
		return dto.HealthStatus{Status: "disabled", Message: disabledMsg}, false
	}
	cctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()
	if err := check(cctx); err != nil {
		return dto.HealthStatus{Status: "error", Message: fmt.Sprintf("unavailable: %v", err)}, true
	}
	return dto.HealthStatus{Status: "ok"}, false
}

func (s *healthService) selfCheck() error {
	tok, _, err := s.deps.Issuer.Issue("selfcheck", time.Minute)
	if err != nil {
		return fmt.Errorf("sign failed: %w", err)
	}
	p, err := s.deps.Verifier.Verify(tok)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	if p.SubjectID != "selfcheck" {
		return fmt.Errorf("verify failed: unexpected subject %q", p.SubjectID)
	}
	return nil
}
