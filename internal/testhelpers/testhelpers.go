package testhelpers

import (
	"bytes"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"innsight/database"
)

// ScenarioCSV trois réservations dont une avec départ avant l'arrivée, en-têtes aliasés
const ScenarioCSV = `Check-In,Check-Out,ADR,Type,Pax,Quarto
2024-01-01,2024-01-03,100,Suite,2,101
2024-01-05,2024-01-04,200,Suite,2,102
2024-02-01,2024-02-02,150,Standard,1,103
`

// SyntheticReservations génère n réservations déterministes
func SyntheticReservations(n int) []database.Reservation {
	return database.GenerateReservations(n, 42)
}

// WorkbookBytes écrit les réservations dans un classeur .xlsx en mémoire (en-têtes portugais)
func WorkbookBytes(tb testing.TB, reservations []database.Reservation) []byte {
	tb.Helper()

	var buf bytes.Buffer
	if err := database.WriteWorkbook(&buf, reservations, database.HeadersPortuguese); err != nil {
		tb.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

// SetupTestDB ouvre la base de test et crée le schéma
func SetupTestDB(tb testing.TB) *sqlx.DB {
	tb.Helper()

	// Charger les variables d'environnement
	_ = godotenv.Load("../../../.env")

	db, err := database.Open(database.ConnStringFromEnv())
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}
	if _, err := db.Exec(database.Schema); err != nil {
		db.Close()
		tb.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// SkipIfNoDatabase skip le test/benchmark si la DB n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../../.env")

	db, err := database.Open(database.ConnStringFromEnv())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	db.Close()
}
