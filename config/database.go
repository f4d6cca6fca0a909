package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	// URL, when set, takes precedence over the discrete fields below.
	// Populated from DATABASE_URL by AppConfig.Sanitize.
	URL      string
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"educonnect"`
	Password string `env:"PASSWORD"                envDefault:"educonnect"`
	Name     string `env:"NAME"                    envDefault:"educonnect"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig contains cache configuration (Redis-based).
type CacheConfig struct {
	// CollegeTTL is the TTL for cached college records and listings. Zero disables caching.
	CollegeTTL time.Duration `env:"CACHE_COLLEGE_TTL" envDefault:"10m"`
}

// Sanitize clamps negative TTLs to zero (disabled).
func (c *CacheConfig) Sanitize() {
	if c.CollegeTTL < 0 {
		c.CollegeTTL = 0
	}
}

// AdmissionConfig controls admission application rules.
type AdmissionConfig struct {
	// EnforceWindow rejects applications outside a college's admission dates.
	EnforceWindow bool `env:"ADMISSION_ENFORCE_WINDOW" envDefault:"false"`
}
