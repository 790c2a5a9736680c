package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Settings holds everything the server and the manage CLI read from the
// environment.
type Settings struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret string
	MediaRoot string

	LogFile   string
	LogLevel  string
	LogStdout bool

	ImageMaxWidth  int
	ImageMaxHeight int
	ImageQuality   int
	ImageMaxPixels int
}

// Load reads .env (if present) and then the environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}

	return &Settings{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "travel_planner"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		MediaRoot: getEnv("MEDIA_ROOT", "./media"),

		LogFile:   getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogStdout: getEnvBool("LOG_STDOUT", false),

		ImageMaxWidth:  getEnvInt("IMAGE_MAX_WIDTH", 800),
		ImageMaxHeight: getEnvInt("IMAGE_MAX_HEIGHT", 600),
		ImageQuality:   getEnvInt("IMAGE_QUALITY", 85),
		ImageMaxPixels: getEnvInt("IMAGE_MAX_PIXELS", 89478485),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logrus.WithField("key", key).Warnf("ignoring invalid value %q, using %d", v, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
