package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreXano     = "xano"
	StorePostgres = "postgres"
)

// Config is built once at startup and shared read-only by every component.
type Config struct {
	Port   string `env:"SERVER_PORT, default=8080"`
	Env    string `env:"APP_ENV, default=development"`
	LogLvl string `env:"LOG_LEVEL, default=info"`
	LogDir string `env:"LOG_DIR"`

	Zoho       ZohoConfig
	SignalWire SignalWireConfig
	SMTP       SMTPConfig
	Xano       XanoConfig

	JWTSecret     string        `env:"JWT_SECRET, required"`
	EmailTokenTTL time.Duration `env:"EMAIL_TOKEN_TTL, default=30m"`
	ClientBaseURL string        `env:"CLIENT_BASE_URL, default=http://localhost:3000"`

	StoreBackend string `env:"STORE_BACKEND, default=xano"`
	DatabaseURL  string `env:"DATABASE_URL"`
	AMQPURL      string `env:"AMQP_URL"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	AllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT, default=15s"`

	ReportRecipient string `env:"REPORT_RECIPIENT"`
	ReportHour      int    `env:"REPORT_HOUR, default=9"`
}

type ZohoConfig struct {
	RefreshToken string `env:"REFRESH_TOKEN"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	GrantType    string `env:"GRANT_TYPE, default=refresh_token"`
	AccountsURL  string `env:"ZOHO_ACCOUNTS_URL, default=https://accounts.zoho.com"`
	APIURL       string `env:"ZOHO_API_URL, default=https://www.zohoapis.com/crm/v2"`
}

type SignalWireConfig struct {
	ProjectID  string `env:"SIGNALWIRE_PROJECT_ID"`
	APIToken   string `env:"SIGNALWIRE_API_TOKEN"`
	SpaceURL   string `env:"SIGNALWIRE_SPACE_URL"`
	FromNumber string `env:"SIGNALWIRE_FROM_NUMBER"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=no-reply@automatedtaxcredits.com"`
}

type XanoConfig struct {
	VerificationURL string `env:"XANO_VERIFICATION_URL"`
	ProgressURL     string `env:"XANO_PROGRESS_URL"`
	FormsURL        string `env:"XANO_FORMS_URL"`
	StagesURL       string `env:"XANO_STAGES_URL"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper builds a Config from an arbitrary source; tests use envconfig.MapLookuper.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreXano:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.ReportHour < 0 || c.ReportHour > 23 {
		return fmt.Errorf("REPORT_HOUR must be between 0 and 23, got %d", c.ReportHour)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
