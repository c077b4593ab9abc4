package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Environment
// wins over flags so that container deployments can override everything
// without touching the command line.
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret key
//	TOKEN_TTL       token TTL, Go duration string (e.g. "24h")
//	PRUNE_INTERVAL  blacklist prune interval, Go duration string
//	BCRYPT_COST     bcrypt cost, integer
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenTTL = d
		}
	}
	if v, ok := os.LookupEnv("PRUNE_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.BlacklistPruneInterval = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
}
