package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret es el secreto de ejemplo del servicio original. Sólo vale en dev.
const DefaultJWTSecret = "supersecretkey"

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"env"`
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr            string        `yaml:"addr"`
		APIPrefix       string        `yaml:"api_prefix"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	// Provider es el identity provider externo (API compatible con Supabase).
	Provider struct {
		URL       string        `yaml:"url"`
		APIKey    string        `yaml:"api_key"`
		JWTSecret string        `yaml:"jwt_secret"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"provider"`

	JWT struct {
		Secret    string `yaml:"secret"`
		Algorithm string `yaml:"algorithm"`
		// Minutos de vida del access token local
		AccessTokenExpireMinutes int `yaml:"access_token_expire_minutes"`
	} `yaml:"jwt"`

	Auth struct {
		// local: el servicio firma su propio token | passthrough: devuelve la sesión del provider
		TokenMode string `yaml:"token_mode"`
		// Expone GET {prefix}/debug/token (decode sin confianza). Prohibido en prod.
		DebugInspect bool `yaml:"debug_inspect"`
		// Acepta cualquier HMAC (HS256/384/512) en la estrategia del provider.
		LegacyLenient bool `yaml:"legacy_lenient"`
	} `yaml:"auth"`

	Profiles struct {
		Driver string `yaml:"driver"` // rest | postgres
		Table  string `yaml:"table"`
		DSN    string `yaml:"dsn"`
		// Aplica migrations/postgres/profiles al arrancar (sólo driver postgres).
		AutoMigrate bool `yaml:"auto_migrate"`
	} `yaml:"profiles"`

	Rate struct {
		Enabled bool          `yaml:"enabled"`
		Driver  string        `yaml:"driver"` // memory | redis
		Limit   int           `yaml:"limit"`
		Window  time.Duration `yaml:"window"`
		Redis   struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"rate"`

	// IdentityCache cachea /auth/v1/user y la lectura admin del usuario.
	// El driver redis reusa rate.redis.addr/db.
	IdentityCache struct {
		Enabled bool          `yaml:"enabled"`
		Driver  string        `yaml:"driver"` // memory | redis
		TTL     time.Duration `yaml:"ttl"`
		Prefix  string        `yaml:"prefix"`
	} `yaml:"identity_cache"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee config.yaml (opcional: path vacío o inexistente => sólo env),
// aplica overrides de entorno y defaults.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// sin archivo: sólo entorno
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := c.applyEnvOverrides(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "Wiz Platform Authentication Service"
	}
	if c.App.Version == "" {
		c.App.Version = "1.0.0"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.APIPrefix == "" {
		c.Server.APIPrefix = "/api/v1"
	}
	c.Server.APIPrefix = "/" + strings.Trim(c.Server.APIPrefix, "/")
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	c.Provider.URL = strings.TrimRight(c.Provider.URL, "/")
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 15 * time.Second
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = DefaultJWTSecret
	}
	if c.JWT.Algorithm == "" {
		c.JWT.Algorithm = "HS256"
	}
	if c.JWT.AccessTokenExpireMinutes <= 0 {
		c.JWT.AccessTokenExpireMinutes = 30
	}
	if c.Auth.TokenMode == "" {
		c.Auth.TokenMode = "local"
	}
	if c.Profiles.Driver == "" {
		c.Profiles.Driver = "rest"
	}
	if c.Profiles.Table == "" {
		c.Profiles.Table = "profiles"
	}
	if c.Rate.Driver == "" {
		c.Rate.Driver = "memory"
	}
	if c.Rate.Limit <= 0 {
		c.Rate.Limit = 20
	}
	if c.Rate.Window <= 0 {
		c.Rate.Window = time.Minute
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "wizauth:rl:"
	}
	if c.IdentityCache.Driver == "" {
		c.IdentityCache.Driver = "memory"
	}
	if c.IdentityCache.TTL <= 0 {
		c.IdentityCache.TTL = 30 * time.Second
	}
	if c.IdentityCache.Prefix == "" {
		c.IdentityCache.Prefix = "wizauth:id:"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// AccessTTL devuelve la vida del token local.
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpireMinutes) * time.Minute
}

// IsProd indica postura de producción.
func (c *Config) IsProd() bool {
	return strings.EqualFold(c.App.Env, "prod") || strings.EqualFold(c.App.Env, "production")
}

// Validate chequea valores críticos. Se llama una vez en el arranque.
func (c *Config) Validate() error {
	var errs []error
	if c.Provider.URL == "" {
		errs = append(errs, errors.New("SUPABASE_URL (provider.url) is required"))
	}
	if c.Provider.APIKey == "" {
		errs = append(errs, errors.New("SUPABASE_KEY (provider.api_key) is required"))
	}
	if c.Provider.JWTSecret == "" {
		errs = append(errs, errors.New("SUPABASE_JWT_SECRET (provider.jwt_secret) is required"))
	}
	switch strings.ToUpper(c.JWT.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q (HS256|HS384|HS512)", c.JWT.Algorithm))
	}
	switch c.Auth.TokenMode {
	case "local", "passthrough":
	default:
		errs = append(errs, fmt.Errorf("invalid auth.token_mode %q (local|passthrough)", c.Auth.TokenMode))
	}
	switch c.Profiles.Driver {
	case "rest":
	case "postgres":
		if c.Profiles.DSN == "" {
			errs = append(errs, errors.New("profiles.dsn is required when profiles.driver=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid profiles.driver %q (rest|postgres)", c.Profiles.Driver))
	}
	switch c.Rate.Driver {
	case "memory":
	case "redis":
		if c.Rate.Enabled && c.Rate.Redis.Addr == "" {
			errs = append(errs, errors.New("rate.redis.addr is required when rate.driver=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid rate.driver %q (memory|redis)", c.Rate.Driver))
	}
	switch c.IdentityCache.Driver {
	case "memory":
	case "redis":
		if c.IdentityCache.Enabled && c.Rate.Redis.Addr == "" {
			errs = append(errs, errors.New("rate.redis.addr is required when identity_cache.driver=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid identity_cache.driver %q (memory|redis)", c.IdentityCache.Driver))
	}

	if c.IsProd() {
		if c.JWT.Secret == DefaultJWTSecret || len(c.JWT.Secret) < 32 {
			errs = append(errs, errors.New("JWT_SECRET_KEY must be set to a strong value (>=32 chars) in prod"))
		}
		if c.Auth.DebugInspect {
			errs = append(errs, errors.New("auth.debug_inspect cannot be enabled in prod"))
		}
	}
	return errors.Join(errs...)
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool, error) {
	s, ok := getEnvStr(key)
	if !ok {
		return 0, false, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false, fmt.Errorf("config: %s: %w", key, err)
	}
	return i, true, nil
}

func getEnvBool(key string) (bool, bool, error) {
	s, ok := getEnvStr(key)
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, true, nil
}

func getEnvDur(key string) (time.Duration, bool, error) {
	s, ok := getEnvStr(key)
	if !ok {
		return 0, false, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, false, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, true, nil
}

// ParseList acepta CSV ("a, b") o un array JSON ('["a","b"]').
func ParseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(s, "[") {
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
// Los nombres son los del servicio original (SUPABASE_*, JWT_*, ...).
func (c *Config) applyEnvOverrides() error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := getEnvStr(key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		v, ok, err := getEnvInt(key)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok, err := getEnvBool(key)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}
	duration := func(key string, dst *time.Duration) {
		v, ok, err := getEnvDur(key)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}

	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	str("PROJECT_NAME", &c.App.Name)

	// SERVER
	if v, ok := getEnvStr("PORT"); ok {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	str("SERVER_ADDR", &c.Server.Addr)
	str("API_V1_STR", &c.Server.APIPrefix)
	if v, ok := getEnvStr("CORS_ORIGINS"); ok {
		list, err := ParseList(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: CORS_ORIGINS: %w", err))
		} else {
			c.Server.CORSOrigins = list
		}
	}
	duration("SERVER_READ_TIMEOUT", &c.Server.ReadTimeout)
	duration("SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout)
	duration("SERVER_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)

	// PROVIDER
	str("SUPABASE_URL", &c.Provider.URL)
	str("SUPABASE_KEY", &c.Provider.APIKey)
	str("SUPABASE_JWT_SECRET", &c.Provider.JWTSecret)
	duration("PROVIDER_TIMEOUT", &c.Provider.Timeout)

	// JWT
	str("JWT_SECRET_KEY", &c.JWT.Secret)
	if v, ok := getEnvStr("JWT_ALGORITHM"); ok {
		c.JWT.Algorithm = strings.ToUpper(v)
	}
	integer("ACCESS_TOKEN_EXPIRE_MINUTES", &c.JWT.AccessTokenExpireMinutes)

	// AUTH
	if v, ok := getEnvStr("AUTH_TOKEN_MODE"); ok {
		c.Auth.TokenMode = strings.ToLower(v)
	}
	boolean("AUTH_DEBUG_INSPECT", &c.Auth.DebugInspect)
	boolean("AUTH_LEGACY_LENIENT", &c.Auth.LegacyLenient)

	// PROFILES
	str("PROFILES_DRIVER", &c.Profiles.Driver)
	str("PROFILES_TABLE", &c.Profiles.Table)
	if v, ok := getEnvStr("PROFILES_DSN"); ok {
		c.Profiles.DSN = v
	} else if v, ok := getEnvStr("DATABASE_URL"); ok {
		c.Profiles.DSN = v
	}

	boolean("PROFILES_AUTO_MIGRATE", &c.Profiles.AutoMigrate)

	// RATE
	boolean("RATE_ENABLED", &c.Rate.Enabled)
	str("RATE_DRIVER", &c.Rate.Driver)
	integer("RATE_LIMIT", &c.Rate.Limit)
	duration("RATE_WINDOW", &c.Rate.Window)
	str("REDIS_ADDR", &c.Rate.Redis.Addr)
	integer("REDIS_DB", &c.Rate.Redis.DB)
	str("REDIS_PREFIX", &c.Rate.Redis.Prefix)

	// IDENTITY CACHE
	boolean("IDENTITY_CACHE_ENABLED", &c.IdentityCache.Enabled)
	str("IDENTITY_CACHE_DRIVER", &c.IdentityCache.Driver)
	duration("IDENTITY_CACHE_TTL", &c.IdentityCache.TTL)
	str("IDENTITY_CACHE_PREFIX", &c.IdentityCache.Prefix)

	// LOG
	str("LOG_LEVEL", &c.Log.Level)

	return errors.Join(errs...)
}
