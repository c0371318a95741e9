package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Metrics MetricsConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level string // debug | info | warn | error
	// Fields are attached to every log entry, parsed from LOG_FIELDS="k=v,k2=v2".
	Fields map[string]string
}

type MetricsConfig struct {
	Enabled   bool
	Path      string
	Namespace string
}

// InspectConfig controls the read-only service listing endpoint.
type InspectConfig struct {
	Enabled bool
	Path    string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "ServiceManager"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Fields: envMap("LOG_FIELDS"),
		},
		Metrics: MetricsConfig{
			Enabled:   envBool("METRICS_ENABLED", true),
			Path:      env("METRICS_PATH", "/metrics"),
			Namespace: env("METRICS_NAMESPACE", "servicemanager"),
		},
		Inspect: InspectConfig{
			Enabled: envBool("INSPECT_ENABLED", true),
			Path:    env("INSPECT_PATH", "/_services"),
		},
	}
}

// Clone returns a deep copy, so a Config can be handed to
// container.UniqueInstance without sharing the Fields map.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Log.Fields != nil {
		out.Log.Fields = make(map[string]string, len(c.Log.Fields))
		for k, v := range c.Log.Fields {
			out.Log.Fields[k] = v
		}
	}
	return &out
}

// Get returns a raw env value, falling back to defaultVal. Use it for
// settings that belong to application code rather than to Config.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// envMap parses "k=v,k2=v2". Malformed pairs are skipped.
func envMap(key string) map[string]string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(v, ",") {
		k, val, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = strings.TrimSpace(val)
	}
	return out
}
