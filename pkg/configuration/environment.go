package configuration

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-periods/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files found in the working directory. When none of them
// exist there, the closest parent directory holding a go.mod is tried instead.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles("", envFiles)
	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, envFiles []string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for dir := wd; ; {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// RemoteAPIOptions describes the HTTP API that owns period and position records.
type RemoteAPIOptions struct {
	BaseURL string        `env:"PERIODS_API_URL" envDefault:"http://localhost:8080/api"`
	Token   string        `env:"PERIODS_API_TOKEN"`
	Timeout time.Duration `env:"PERIODS_API_TIMEOUT" envDefault:"30s"`
	// Extra headers sent with every call, e.g. "X-Tenant:kampus,X-Client:console".
	Headers map[string]string `env:"PERIODS_API_HEADERS"`
	// Dates coming from the API are shown in this zone.
	Timezone string `env:"PERIODS_API_TIMEZONE" envDefault:"UTC"`
}

func (r *RemoteAPIOptions) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil || r.Timezone == "" {
		return time.UTC
	}
	return loc
}

func (r *RemoteAPIOptions) Validate() error {
	u, err := url.Parse(strings.TrimSpace(r.BaseURL))
	if err != nil {
		return fmt.Errorf("invalid PERIODS_API_URL=%q: %w", r.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("PERIODS_API_URL must use http or https, got %q", r.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("PERIODS_API_URL must include a host, got %q", r.BaseURL)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("PERIODS_API_TIMEOUT must be non-negative, got %s", r.Timeout)
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("invalid PERIODS_API_TIMEZONE=%q: %w", r.Timezone, err)
		}
	}
	return nil
}

// HeaderSet returns the fixed header set attached to every remote call.
func (r *RemoteAPIOptions) HeaderSet() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	if token := strings.TrimSpace(r.Token); token != "" {
		if !strings.Contains(token, " ") {
			token = "Bearer " + token
		}
		h.Set("Authorization", token)
	}
	for k, v := range r.Headers {
		h.Set(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return h
}

type LokiOptions struct {
	URL     string `env:"LOKI_URL"`
	AppName string `env:"LOKI_APP_NAME" envDefault:"periods"`
	LogPath string `env:"LOG_PATH" envDefault:"./logs/app.log"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"periods"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

// OpsGuardOptions hides ops routes (metrics, health) in production unless the
// caller matches one of the configured credentials.
type OpsGuardOptions struct {
	Enabled       bool   `env:"OPS_GUARD_ENABLED" envDefault:"true"`
	Token         string `env:"OPS_GUARD_TOKEN"`
	CIDRs         string `env:"OPS_GUARD_CIDRS"`
	BasicAuthUser string `env:"OPS_GUARD_BASIC_AUTH_USER"`
	BasicAuthPass string `env:"OPS_GUARD_BASIC_AUTH_PASS"`
	// Empty means config/routing/allowlist.yaml under the module root.
	AllowlistPath string `env:"ROUTING_ALLOWLIST_PATH"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type Configuration struct {
	Remote        RemoteAPIOptions
	Loki          LokiOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	OpsGuard      OpsGuardOptions

	ServerPort         int      `env:"PORT" envDefault:"3200"`
	GoAppEnvironment   string   `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress      string   `env:"-"`
	Domain             string   `env:"DOMAIN" envDefault:"localhost"`
	Origin             string   `env:"ORIGIN" envDefault:"http://localhost:3200"`
	CorsOrigins        []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3200"`
	SupportedLanguages []string `env:"SUPPORTED_LANGUAGES" envDefault:"en,id"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"error"`
	// Looked up on incoming requests and forwarded to the remote API; generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Falls back to request.RemoteAddr when the header is absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	// Cookie carrying one-shot notifications across redirects.
	FlashCookieKey string `env:"FLASH_COOKIE_KEY" envDefault:"flash"`

	logFile io.Closer
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if err := c.Remote.Validate(); err != nil {
		return fmt.Errorf("remote api configuration error: %w", err)
	}

	closer, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Loki.LogPath)
	if err != nil {
		return err
	}
	c.logFile = closer
	c.logger = logger

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
