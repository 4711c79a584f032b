package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port                  int    `yaml:"port"`
	DashboardBaseURL      string `yaml:"dashboardBaseUrl"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	LogLevel              string `yaml:"logLevel"`
	LogFormat             string `yaml:"logFormat"`
	Env                   string `yaml:"env"`

	TracingEnabled     bool    `yaml:"tracingEnabled"`
	TracingServiceName string  `yaml:"tracingServiceName"`
	OTLPEndpoint       string  `yaml:"otlpEndpoint"`
	OTLPInsecure       bool    `yaml:"otlpInsecure"`
	TracingSampleRatio float64 `yaml:"tracingSampleRatio"`
}

// LoadConfig reads the optional YAML file at filePath, applies environment
// overrides, and fills defaults. An empty or missing file is not an error;
// the bridge runs against the default local backend out of the box.
func LoadConfig(filePath string) (*Config, error) {
	var c Config
	if path := strings.TrimSpace(filePath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &c); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("DASHBOARD_BASE_URL"); v != "" {
		c.DashboardBaseURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestTimeoutSeconds = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("DECKD_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		c.TracingEnabled = parseBool(v)
	}
	if v := os.Getenv("TRACING_SERVICE_NAME"); v != "" {
		c.TracingServiceName = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		c.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		c.OTLPInsecure = parseBool(v)
	}
	if v := os.Getenv("TRACING_SAMPLE_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TracingSampleRatio = f
		}
	}

	if c.Port == 0 {
		c.Port = 4175
	}
	if c.DashboardBaseURL == "" {
		c.DashboardBaseURL = dashboard.DefaultBaseURL
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.TracingServiceName == "" {
		c.TracingServiceName = "deckd"
	}
	if c.TracingSampleRatio <= 0 || c.TracingSampleRatio > 1 {
		c.TracingSampleRatio = 1
	}

	log.Printf("Bridge Config: {Port:%d Backend:%s Timeout:%ds Log:%s/%s Env:%s}\n",
		c.Port, c.DashboardBaseURL, c.RequestTimeoutSeconds, c.LogLevel, c.LogFormat, c.Env)
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, "port must be between 1 and 65535")
	}
	u, err := url.Parse(c.DashboardBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, "dashboardBaseUrl must be a valid http(s) URL")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "logLevel must be one of: debug, info, warn, error")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, "logFormat must be one of: json, text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RequestTimeout returns the per-request timeout for outbound backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func parseBool(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	return v == "1" || v == "true" || v == "yes"
}
