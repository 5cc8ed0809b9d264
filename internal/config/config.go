package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env      string
	HTTPPort string

	StoreBackend string // "mongo" or "memory"
	MongoURI     string
	MongoDB      string
	RedisAddr    string

	JWTIssuer     string
	JWTSigningKey string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	AdminEmail        string
	AdminPasswordHash string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string

	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AISkip    bool

	QueueBackend    string
	RateLimitPerMin int

	// Cache TTLs per entity and the deadline for settings reads.
	MembersTTL          time.Duration
	EventsTTL           time.Duration
	ProjectsTTL         time.Duration
	AchievementsTTL     time.Duration
	SettingsTTL         time.Duration
	SettingsReadTimeout time.Duration
}

// Load returns application config populated from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() App {
	_ = godotenv.Load()

	return App{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPPort: getEnv("HTTP_PORT", "8081"),

		StoreBackend: getEnv("STORE_BACKEND", "mongo"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "clubhub"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),

		JWTIssuer:     getEnv("JWT_ISSUER", "clubhub"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:     durationEnv("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    durationEnv("REFRESH_TTL", 24*time.Hour),

		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@clubhub.local"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AIBaseURL: getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "gemini-1.5-flash"),
		AISkip:    boolEnv("AI_SKIP", true),

		QueueBackend:    getEnv("QUEUE_BACKEND", "redis"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),

		MembersTTL:          durationEnv("CACHE_MEMBERS_TTL", 5*time.Minute),
		EventsTTL:           durationEnv("CACHE_EVENTS_TTL", 10*time.Minute),
		ProjectsTTL:         durationEnv("CACHE_PROJECTS_TTL", 10*time.Minute),
		AchievementsTTL:     durationEnv("CACHE_ACHIEVEMENTS_TTL", 15*time.Minute),
		SettingsTTL:         durationEnv("CACHE_SETTINGS_TTL", 30*time.Minute),
		SettingsReadTimeout: durationEnv("SETTINGS_READ_TIMEOUT", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
