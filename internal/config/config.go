package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config paramètres du serveur et du pipeline de chargement
type Config struct {
	HTTPAddr string

	// DataPath chemin local ou URL s3://bucket/key du fichier de réservations
	DataPath    string
	AliasesFile string

	CacheTTL     time.Duration
	DateDayFirst bool
	Currency     string

	// DatabaseURL + ReservationsQuery activent la source PostgreSQL
	DatabaseURL       string
	ReservationsQuery string

	MaxUploadMB int

	// EnableProfiler expose net/http/pprof sous /debug
	EnableProfiler bool
}

// Load lit .env (optionnel) puis l'environnement.
// defaultDataPath est utilisé quand DATA_PATH n'est pas défini.
func Load(defaultDataPath string) *Config {
	// Charger les variables d'environnement (le fichier est optionnel)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	return &Config{
		HTTPAddr:          getEnvOrDefault("HTTP_ADDR", ":8080"),
		DataPath:          getEnvOrDefault("DATA_PATH", defaultDataPath),
		AliasesFile:       os.Getenv("ALIASES_FILE"),
		CacheTTL:          getEnvAsDurationOrDefault("CACHE_TTL", 0),
		DateDayFirst:      getEnvAsBoolOrDefault("DATE_DAY_FIRST", false),
		Currency:          getEnvOrDefault("CURRENCY", "R$"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ReservationsQuery: os.Getenv("RESERVATIONS_QUERY"),
		MaxUploadMB:       getEnvAsIntOrDefault("MAX_UPLOAD_MB", 20),
		EnableProfiler:    getEnvAsBoolOrDefault("ENABLE_PROFILER", false),
	}
}

// UsePostgres vrai quand une base est configurée comme source
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// MaxUploadBytes taille maximale acceptée pour un upload
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
		log.Printf("Environment variable %s is invalid, using default value", key)
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return defaultValue
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		log.Printf("Environment variable %s is invalid, using default value", key)
		return defaultValue
	}
}

// getEnvAsDurationOrDefault accepte "10m" ou un nombre de secondes
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Environment variable %s is invalid, using default value", key)
	return defaultValue
}
