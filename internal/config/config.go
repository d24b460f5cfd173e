package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment names accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config holds all the environment‐driven settings for the application.
type Config struct {
	// HTTP
	Env         string
	Port        string
	HTTPSPort   string
	TLSCertFile string
	TLSKeyFile  string

	// QR rendering
	PixelsPerModule int

	// Redis (optional QR cache)
	RedisAddr     string
	RedisPassword string
	QRCacheTTL    time.Duration

	// Tracing
	ZipkinURL   string
	ServiceName string
}

// Load reads and validates the environment variables, applying defaults
// where appropriate. It returns an error if any variable is malformed.
func Load() (*Config, error) {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	switch env {
	case "":
		env = EnvProduction
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q: want %s, %s or %s",
			env, EnvDevelopment, EnvStaging, EnvProduction)
	}

	port, err := portFromEnv("PORT", "8080")
	if err != nil {
		return nil, err
	}
	// Empty HTTPS_PORT disables both the redirect and the TLS listener.
	httpsPort, err := portFromEnv("HTTPS_PORT", "")
	if err != nil {
		return nil, err
	}

	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")
	if (certFile == "") != (keyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if certFile != "" && httpsPort == "" {
		return nil, fmt.Errorf("HTTPS_PORT is required when TLS_CERT_FILE is set")
	}

	ppm := 20
	if s := os.Getenv("QR_PIXELS_PER_MODULE"); s != "" {
		ppm, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid QR_PIXELS_PER_MODULE %q: %w", s, err)
		}
		if ppm < 1 {
			return nil, fmt.Errorf("QR_PIXELS_PER_MODULE must be positive, got %d", ppm)
		}
	}

	ttl := 10 * time.Minute
	if s := os.Getenv("QR_CACHE_TTL"); s != "" {
		ttl, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid QR_CACHE_TTL %q: %w", s, err)
		}
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "forecast-qr-api"
	}

	return &Config{
		Env:         env,
		Port:        port,
		HTTPSPort:   httpsPort,
		TLSCertFile: certFile,
		TLSKeyFile:  keyFile,

		PixelsPerModule: ppm,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		QRCacheTTL:    ttl,

		ZipkinURL:   os.Getenv("ZIPKIN_URL"),
		ServiceName: serviceName,
	}, nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// DocsEnabled reports whether the API documentation UI should be served.
func (c *Config) DocsEnabled() bool { return !c.IsProduction() }

// TLSEnabled reports whether an HTTPS listener should be started.
func (c *Config) TLSEnabled() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

func portFromEnv(name, def string) (string, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if p < 1 || p > 65535 {
		return "", fmt.Errorf("invalid %s %q: out of range", name, s)
	}
	return s, nil
}
