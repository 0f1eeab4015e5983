package database

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

// Init ouvre la connexion PostgreSQL partagée
func Init(connStr string) error {
	db, err := Open(connStr)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open ouvre une connexion et vérifie qu'elle répond
func Open(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Pool de connexions: lecture seule, peu de requêtes concurrentes
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// ConnStringFromEnv construit la chaîne de connexion: DATABASE_URL sinon DB_HOST, DB_PORT...
func ConnStringFromEnv() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "innsight"),
		getEnv("DB_PASSWORD", "innsight"),
		getEnv("DB_NAME", "innsight"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
