package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string

	StoreBackend            string
	FirestoreProjectID      string
	FirestoreDatabaseID     string
	GoogleCredentialsJSON   string
	FirestoreEmulatorHost   string
	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled   bool
	CacheTTL       time.Duration
	RedisURL       string
	ArchiveLockTTL time.Duration

	CycleLocation          *time.Location
	AutoArchiveEnabled     bool
	AutoArchiveMinPlayers  int
	LeaderboardExcludedIDs []string
	PlayerSyncWorkers      int
	PlayerSyncLookback     time.Duration

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTIssuer         string
	TokenTTL          time.Duration
	VoterCookieSecure bool

	PublicWriteRatePerSec float64
	PublicWriteBurst      int
	TrustProxyHeaders     bool

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "soccernow-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if cfg.WriteTimeout, err = time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	if err := loadStore(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadDomain(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAuth(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStore(cfg *Config) error {
	backend := strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", StoreMemory)))
	switch backend {
	case StoreMemory, StoreFirestore, StorePostgres:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: valid values are %s, %s, %s", backend, StoreMemory, StoreFirestore, StorePostgres)
	}
	cfg.StoreBackend = backend

	cfg.FirestoreProjectID = strings.TrimSpace(getEnv("FIRESTORE_PROJECT_ID", ""))
	cfg.FirestoreDatabaseID = strings.TrimSpace(getEnv("FIRESTORE_DATABASE_ID", ""))
	cfg.GoogleCredentialsJSON = strings.TrimSpace(getEnv("GOOGLE_CREDENTIALS", ""))
	cfg.FirestoreEmulatorHost = strings.TrimSpace(getEnv("FIRESTORE_EMULATOR_HOST", ""))
	if backend == StoreFirestore && cfg.FirestoreProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_BACKEND=%s", StoreFirestore)
	}

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if backend == StorePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORE_BACKEND=%s", StorePostgres)
	}
	disablePrepared, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = disablePrepared

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "60s")); err != nil {
		return fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}

	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))
	if cfg.ArchiveLockTTL, err = time.ParseDuration(getEnv("ARCHIVE_LOCK_TTL", "30s")); err != nil {
		return fmt.Errorf("parse ARCHIVE_LOCK_TTL: %w", err)
	}
	if cfg.ArchiveLockTTL <= 0 {
		return fmt.Errorf("ARCHIVE_LOCK_TTL must be > 0")
	}

	return nil
}

func loadDomain(cfg *Config) error {
	zone := strings.TrimSpace(getEnv("CYCLE_TIMEZONE", "America/Los_Angeles"))
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return fmt.Errorf("parse CYCLE_TIMEZONE: %w", err)
	}
	cfg.CycleLocation = loc

	if cfg.AutoArchiveEnabled, err = strconv.ParseBool(getEnv("AUTO_ARCHIVE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse AUTO_ARCHIVE_ENABLED: %w", err)
	}
	if cfg.AutoArchiveMinPlayers, err = getEnvAsInt("AUTO_ARCHIVE_MIN_PLAYERS", 4); err != nil {
		return fmt.Errorf("parse AUTO_ARCHIVE_MIN_PLAYERS: %w", err)
	}
	if cfg.AutoArchiveMinPlayers < 1 {
		return fmt.Errorf("AUTO_ARCHIVE_MIN_PLAYERS must be >= 1")
	}

	cfg.LeaderboardExcludedIDs = splitCSV(getEnv("LEADERBOARD_EXCLUDED_GAME_IDS", "2026-01-22"))

	if cfg.PlayerSyncWorkers, err = getEnvAsInt("PLAYER_SYNC_WORKERS", 4); err != nil {
		return fmt.Errorf("parse PLAYER_SYNC_WORKERS: %w", err)
	}
	if cfg.PlayerSyncWorkers < 1 {
		return fmt.Errorf("PLAYER_SYNC_WORKERS must be >= 1")
	}
	if cfg.PlayerSyncLookback, err = time.ParseDuration(getEnv("PLAYER_SYNC_LOOKBACK", "720h")); err != nil {
		return fmt.Errorf("parse PLAYER_SYNC_LOOKBACK: %w", err)
	}
	if cfg.PlayerSyncLookback <= 0 {
		return fmt.Errorf("PLAYER_SYNC_LOOKBACK must be > 0")
	}

	if cfg.PublicWriteRatePerSec, err = strconv.ParseFloat(getEnv("PUBLIC_WRITE_RATE_PER_SEC", "2"), 64); err != nil {
		return fmt.Errorf("parse PUBLIC_WRITE_RATE_PER_SEC: %w", err)
	}
	if cfg.PublicWriteBurst, err = getEnvAsInt("PUBLIC_WRITE_BURST", 10); err != nil {
		return fmt.Errorf("parse PUBLIC_WRITE_BURST: %w", err)
	}
	if cfg.PublicWriteRatePerSec > 0 && cfg.PublicWriteBurst < 1 {
		return fmt.Errorf("PUBLIC_WRITE_BURST must be >= 1 when rate limiting is enabled")
	}
	if cfg.TrustProxyHeaders, err = strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false")); err != nil {
		return fmt.Errorf("parse TRUST_PROXY_HEADERS: %w", err)
	}

	return nil
}

func loadAuth(cfg *Config) error {
	cfg.AdminUsername = strings.TrimSpace(getEnv("ADMIN_USERNAME", "admin"))
	cfg.AdminPasswordHash = strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", ""))
	cfg.JWTSecret = strings.TrimSpace(getEnv("AUTH_JWT_SECRET", ""))
	cfg.JWTIssuer = strings.TrimSpace(getEnv("AUTH_JWT_ISSUER", cfg.ServiceName))

	ttl, err := time.ParseDuration(getEnv("AUTH_TOKEN_TTL", "12h"))
	if err != nil {
		return fmt.Errorf("parse AUTH_TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be > 0")
	}
	cfg.TokenTTL = ttl

	if cfg.AdminPasswordHash != "" && cfg.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}
	if cfg.AppEnv == EnvProd && cfg.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required when APP_ENV=%s", EnvProd)
	}

	secureDefault := "false"
	if cfg.AppEnv == EnvProd {
		secureDefault = "true"
	}
	if cfg.VoterCookieSecure, err = strconv.ParseBool(getEnv("VOTER_COOKIE_SECURE", secureDefault)); err != nil {
		return fmt.Errorf("parse VOTER_COOKIE_SECURE: %w", err)
	}

	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
