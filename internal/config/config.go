package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Drivers soportados.
const (
	PlatformSupabase = "supabase"
	PlatformMemory   = "memory"

	ProfilesPostgREST = "postgrest"
	ProfilesPostgres  = "postgres"
	ProfilesMemory    = "memory"

	RateMemory = "memory"
	RateRedis  = "redis"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"env" env:"APP_ENV"`
		Version string `yaml:"version" env:"APP_VERSION"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"log"`

	Server struct {
		Addr               string        `yaml:"addr" env:"HTTP_ADDR"`
		CORSAllowedOrigins []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
		ReadTimeout        time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
		WriteTimeout       time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
		ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`

		// Solo detrás de un proxy que reescribe X-Forwarded-For.
		TrustProxyHeaders bool `yaml:"trust_proxy_headers" env:"TRUST_PROXY_HEADERS"`
	} `yaml:"server"`

	// Platform: identidad hosteada (supabase) o en memoria.
	Platform struct {
		Driver  string        `yaml:"driver" env:"PLATFORM_DRIVER"`
		URL     string        `yaml:"url" env:"SUPABASE_URL"`
		Key     string        `yaml:"key" env:"SUPABASE_KEY"`
		Timeout time.Duration `yaml:"timeout" env:"PLATFORM_TIMEOUT"`
		Memory  struct {
			JWTSecret string        `yaml:"jwt_secret" env:"MEMORY_JWT_SECRET"`
			AccessTTL time.Duration `yaml:"access_ttl" env:"MEMORY_ACCESS_TTL"`
		} `yaml:"memory"`
	} `yaml:"platform"`

	// Profiles: dónde vive la relación users.
	Profiles struct {
		Store    string `yaml:"store" env:"PROFILE_STORE"`
		Table    string `yaml:"table" env:"PROFILE_TABLE"`
		DSN      string `yaml:"dsn" env:"DATABASE_URL"`
		Postgres struct {
			MaxConns        int32         `yaml:"max_conns" env:"DB_MAX_CONNS"`
			MinConns        int32         `yaml:"min_conns" env:"DB_MIN_CONNS"`
			ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
			AutoMigrate     bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
		} `yaml:"postgres"`
	} `yaml:"profiles"`

	Rate struct {
		Enabled bool          `yaml:"enabled" env:"RATE_ENABLED"`
		Backend string        `yaml:"backend" env:"RATE_BACKEND"`
		Limit   int           `yaml:"limit" env:"RATE_LIMIT"`
		Window  time.Duration `yaml:"window" env:"RATE_WINDOW"`
		Redis   struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
			Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"rate"`
}

// Load lee el YAML (si existe), aplica overrides de entorno, defaults y valida.
// path vacío o archivo inexistente no es error.
func Load(path string) (*Config, error) {
	var c Config

	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	c.Platform.Driver = strings.ToLower(strings.TrimSpace(c.Platform.Driver))
	if c.Platform.Driver == "" {
		c.Platform.Driver = PlatformSupabase
	}
	c.Platform.URL = strings.TrimRight(strings.TrimSpace(c.Platform.URL), "/")
	if c.Platform.Timeout == 0 {
		c.Platform.Timeout = 10 * time.Second
	}
	if c.Platform.Memory.AccessTTL == 0 {
		c.Platform.Memory.AccessTTL = time.Hour
	}

	c.Profiles.Store = strings.ToLower(strings.TrimSpace(c.Profiles.Store))
	if c.Profiles.Store == "" {
		// El store por defecto acompaña al platform.
		if c.Platform.Driver == PlatformMemory {
			c.Profiles.Store = ProfilesMemory
		} else {
			c.Profiles.Store = ProfilesPostgREST
		}
	}
	if c.Profiles.Table == "" {
		c.Profiles.Table = "users"
	}
	if c.Profiles.Postgres.MaxConns == 0 {
		c.Profiles.Postgres.MaxConns = 10
	}

	c.Rate.Backend = strings.ToLower(strings.TrimSpace(c.Rate.Backend))
	if c.Rate.Backend == "" {
		c.Rate.Backend = RateMemory
	}
	if c.Rate.Limit == 0 {
		c.Rate.Limit = 10
	}
	if c.Rate.Window == 0 {
		c.Rate.Window = time.Minute
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "rl:"
	}
}

// Validate chequea combinaciones de drivers y credenciales requeridas.
func (c *Config) Validate() error {
	var errs []error

	switch c.Platform.Driver {
	case PlatformSupabase:
		if c.Platform.URL == "" {
			errs = append(errs, errors.New("SUPABASE_URL is required for the supabase platform"))
		} else if u, err := url.Parse(c.Platform.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("SUPABASE_URL %q is not an absolute URL", c.Platform.URL))
		}
		if strings.TrimSpace(c.Platform.Key) == "" {
			errs = append(errs, errors.New("SUPABASE_KEY is required for the supabase platform"))
		}
	case PlatformMemory:
		if len(c.Platform.Memory.JWTSecret) < 32 {
			errs = append(errs, errors.New("MEMORY_JWT_SECRET must be at least 32 bytes"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PLATFORM_DRIVER %q", c.Platform.Driver))
	}

	switch c.Profiles.Store {
	case ProfilesPostgREST:
		if c.Platform.Driver != PlatformSupabase {
			errs = append(errs, errors.New("PROFILE_STORE=postgrest requires PLATFORM_DRIVER=supabase"))
		}
	case ProfilesPostgres:
		if strings.TrimSpace(c.Profiles.DSN) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for PROFILE_STORE=postgres"))
		}
	case ProfilesMemory:
		if c.Platform.Driver != PlatformMemory {
			errs = append(errs, errors.New("PROFILE_STORE=memory requires PLATFORM_DRIVER=memory"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PROFILE_STORE %q", c.Profiles.Store))
	}

	if c.Rate.Enabled {
		switch c.Rate.Backend {
		case RateMemory:
		case RateRedis:
			if strings.TrimSpace(c.Rate.Redis.Addr) == "" {
				errs = append(errs, errors.New("REDIS_ADDR is required for RATE_BACKEND=redis"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown RATE_BACKEND %q", c.Rate.Backend))
		}
		if c.Rate.Limit < 0 || c.Rate.Window < 0 {
			errs = append(errs, errors.New("rate limit and window must be positive"))
		}
	}

	return errors.Join(errs...)
}
