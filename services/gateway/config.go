package gateway

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the gateway service.
type Config struct {
	Addr            string        `env:"ADDR,default=:8080"`
	DBDSN           string        `env:"DB_DSN,required"`
	RedisAddr       string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	NATSURL         string        `env:"NATS_URL"`
	UpstreamBaseURL string        `env:"MULEARN_BASE_URL,default=https://mulearn.org/api/v1"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	SessionTTL      time.Duration `env:"SESSION_TTL,default=12h"`
	CacheTTL        time.Duration `env:"CACHE_TTL,default=30s"`
	LedgerIdleTTL   time.Duration `env:"LEDGER_IDLE_TTL,default=24h"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig returns a Config populated from environment variables.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
