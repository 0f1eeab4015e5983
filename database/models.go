package database

import "time"

// ============================================================================
// MODÈLES DE DONNÉES - Export de réservations
// ============================================================================

// Reservation - Ligne d'un export de réservations (avant normalisation)
type Reservation struct {
	ID            int       `db:"id" json:"id"`
	ArrivalDate   time.Time `db:"arrival_date" json:"arrival_date"`
	DepartureDate time.Time `db:"departure_date" json:"departure_date"`
	DailyRate     float64   `db:"daily_rate" json:"daily_rate"`
	RoomType      string    `db:"room_type" json:"room_type"`
	Guests        int       `db:"guests" json:"guests"`
	Room          string    `db:"room" json:"room"`
}

// Schema crée la table lue par la source PostgreSQL
const Schema = `
CREATE TABLE IF NOT EXISTS reservations (
	id             SERIAL PRIMARY KEY,
	arrival_date   DATE NOT NULL,
	departure_date DATE NOT NULL,
	daily_rate     NUMERIC(10, 2) NOT NULL,
	room_type      VARCHAR(50) NOT NULL,
	guests         INTEGER NOT NULL,
	room           VARCHAR(20) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reservations_arrival ON reservations (arrival_date);
`

// Jeux d'en-têtes utilisés pour générer les classeurs
var (
	HeadersEnglish    = []string{"Arrival Date", "Departure Date", "Daily Rate", "Room Type", "No Of Guests", "Room"}
	HeadersPortuguese = []string{"Data De Chegada", "Data De Saída", "Tarifa Diária", "Tipo De Quarto", "Hóspedes", "Quarto"}
)

// Headers retourne les en-têtes pour la langue demandée ("pt" ou "en")
func Headers(lang string) []string {
	if lang == "pt" {
		return HeadersPortuguese
	}
	return HeadersEnglish
}
