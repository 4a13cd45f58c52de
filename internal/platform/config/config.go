package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures the process configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	Table         string
	AuditTable    string
	Redis         RedisConfig
	JWTSigningKey string
	RecentLimit   int
	CacheTTL      time.Duration
}

// RedisConfig controls the optional recent-window cache. An empty URL
// disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. An empty DONORCHECK_DATABASE_URL selects the in-memory stores.
func FromEnv() Server {
	addr := os.Getenv("DONORCHECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	table := os.Getenv("DONORCHECK_TABLE")
	if table == "" {
		table = "inspection_records"
	}
	auditTable := os.Getenv("DONORCHECK_AUDIT_TABLE")
	if auditTable == "" {
		auditTable = "inspection_audit_events"
	}

	recentLimit := 10
	if raw := os.Getenv("DONORCHECK_RECENT_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			recentLimit = n
		}
	}
	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("DONORCHECK_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DONORCHECK_DATABASE_URL"),
		Table:         table,
		AuditTable:    auditTable,
		JWTSigningKey: os.Getenv("DONORCHECK_JWT_SIGNING_KEY"),
		RecentLimit:   recentLimit,
		CacheTTL:      cacheTTL,
		Redis: RedisConfig{
			URL:          os.Getenv("DONORCHECK_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
