package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig selects the SQL dialect and connection parameters
type DatabaseConfig struct {
	Type            string        `env:"DB_TYPE,default=postgres"`
	DSN             string        `env:"DB_DSN"`
	Host            string        `env:"DB_HOST,default=localhost"`
	Port            string        `env:"DB_PORT"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_DATABASE,default=steamprofile"`
	Verbose         bool          `env:"VERBOSE_DB,default=false"`
	Migrate         bool          `env:"MIGRATE_DB,default=false"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=1h"`
}

// Config is read from the environment first and then completed by the
// settings file for the keys the environment leaves unset.
type Config struct {
	Port    string `env:"PORT,default=8080"`
	WebPort string `env:"WEB_PORT,default=8081"`
	GinMode string `env:"GIN_MODE,default=debug"`

	UseHTTPS bool   `env:"USE_HTTPS,default=false"`
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`

	DB       DatabaseConfig
	RedisURL string `env:"REDIS_URL"`

	JWTSecret  string        `env:"JWT_SECRET,default=change-me"`
	JWTTTL     time.Duration `env:"JWT_TTL,default=24h"`
	SessionTTL time.Duration `env:"SESSION_TTL,default=24h"`
	CookieKey  string        `env:"KEY,default=secret"`

	CORSOrigins    []string `env:"CORS_ORIGINS,default=*"`
	// TrustedProxies may set X-Forwarded-For. Empty trusts no one.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
	LoginRateLimit float64  `env:"LOGIN_RATE_LIMIT,default=1"`
	LoginBurst     int      `env:"LOGIN_BURST,default=5"`

	CleanupSchedule string `env:"CLEANUP_SCHEDULE,default=@every 1h"`

	// ExposeResetCodes returns password reset codes in the API response.
	// Only meant for development, there is no mail delivery.
	ExposeResetCodes bool `env:"EXPOSE_RESET_CODES,default=false"`

	SettingsFile      string `env:"APP_SETTINGS,default=appsettings.json"`
	UseRemoteServices bool   `env:"USE_REMOTE_SERVICES"`
	APIBaseURL        string `env:"API_BASE_URL"`
}

// Settings is the shape of appsettings.json (or .yaml)
type Settings struct {
	UseRemoteServices *bool             `json:"UseRemoteServices" yaml:"UseRemoteServices"`
	ApiBaseUrl        string            `json:"ApiBaseUrl" yaml:"ApiBaseUrl"`
	ConnectionStrings map[string]string `json:"ConnectionStrings" yaml:"ConnectionStrings"`
}

// Load reads the configuration. A missing settings file is not an error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("error decoding environment: %w", err)
	}

	settings, err := ReadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		cfg.apply(settings)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:" + cfg.Port + "/"
	}
	return cfg, nil
}

// ReadSettings parses the settings file, picking YAML or JSON by extension.
// It returns nil, nil when the file does not exist.
func ReadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
	}

	settings := &Settings{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, settings)
	default:
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing settings file %s: %w", path, err)
	}
	return settings, nil
}

func (c *Config) apply(s *Settings) {
	if _, set := os.LookupEnv("USE_REMOTE_SERVICES"); !set && s.UseRemoteServices != nil {
		c.UseRemoteServices = *s.UseRemoteServices
	}
	if _, set := os.LookupEnv("API_BASE_URL"); !set && s.ApiBaseUrl != "" {
		c.APIBaseURL = s.ApiBaseUrl
	}
	if _, set := os.LookupEnv("DB_DSN"); !set {
		if dsn := s.ConnectionStrings["DefaultConnection"]; dsn != "" {
			c.DB.DSN = dsn
		}
	}
}
