package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/dropDatabas3/wizauth/internal/cache"
	"github.com/dropDatabas3/wizauth/internal/metrics"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// CachedLookup envuelve un IdentityLookup con un cache de TTL corto. Sólo
// cachea respuestas exitosas; un error del cache se trata como miss.
type CachedLookup struct {
	next  IdentityLookup
	cache cache.Client
	ttl   time.Duration
}

func NewCachedLookup(next IdentityLookup, c cache.Client, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, cache: c, ttl: ttl}
}

// GetUser cachea por hash del bearer: el token nunca se usa como clave.
func (l *CachedLookup) GetUser(ctx context.Context, bearer string) (*provider.User, error) {
	sum := sha256.Sum256([]byte(bearer))
	key := "whoami:" + hex.EncodeToString(sum[:])
	return l.cached(ctx, "whoami", key, func() (*provider.User, error) {
		return l.next.GetUser(ctx, bearer)
	})
}

func (l *CachedLookup) AdminGetUser(ctx context.Context, id string) (*provider.User, error) {
	return l.cached(ctx, "admin", "admin:"+id, func() (*provider.User, error) {
		return l.next.AdminGetUser(ctx, id)
	})
}

func (l *CachedLookup) cached(ctx context.Context, kind, key string, load func() (*provider.User, error)) (*provider.User, error) {
	if raw, err := l.cache.Get(ctx, key); err == nil {
		var u provider.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			metrics.IdentityCache.WithLabelValues(kind, "hit").Inc()
			return &u, nil
		}
	} else if !cache.IsNotFound(err) {
		logger.From(ctx).Debug("identity cache get failed", logger.Err(err))
	}
	metrics.IdentityCache.WithLabelValues(kind, "miss").Inc()

	u, err := load()
	if err != nil || u == nil {
		return u, err
	}
	if b, err := json.Marshal(u); err == nil {
		if err := l.cache.Set(ctx, key, string(b), l.ttl); err != nil {
			logger.From(ctx).Debug("identity cache set failed", logger.Err(err))
		}
	}
	return u, nil
}
