package database

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// roomTypeProfile tarif de base et capacité par type de chambre
type roomTypeProfile struct {
	name      string
	baseRate  float64
	maxGuests int
	rooms     []string
}

var roomProfiles = []roomTypeProfile{
	{name: "Standard", baseRate: 180, maxGuests: 2, rooms: roomNumbers(100, 20)},
	{name: "Superior", baseRate: 260, maxGuests: 3, rooms: roomNumbers(200, 12)},
	{name: "Deluxe", baseRate: 380, maxGuests: 3, rooms: roomNumbers(300, 8)},
	{name: "Suite", baseRate: 650, maxGuests: 4, rooms: roomNumbers(400, 4)},
}

func roomNumbers(floor, count int) []string {
	rooms := make([]string, count)
	for i := range rooms {
		rooms[i] = strconv.Itoa(floor + i + 1)
	}
	return rooms
}

// seasonality multiplicateur de tarif par mois (haute saison en été austral)
var seasonality = map[time.Month]float64{
	time.January: 1.35, time.February: 1.30, time.March: 1.05, time.April: 0.95,
	time.May: 0.85, time.June: 0.90, time.July: 1.10, time.August: 0.90,
	time.September: 0.90, time.October: 0.95, time.November: 1.00, time.December: 1.40,
}

// GenerateReservations génère count réservations déterministes pour seed.
// Environ 1% des lignes ont un départ avant l'arrivée et quelques tarifs sont aberrants,
// pour exercer le nettoyage.
func GenerateReservations(count int, seed int64) []Reservation {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	out := make([]Reservation, 0, count)
	for i := 0; i < count; i++ {
		profile := roomProfiles[rng.Intn(len(roomProfiles))]
		arrival := start.AddDate(0, 0, rng.Intn(730))
		nights := 1 + int(math.Round(rng.ExpFloat64()*2))
		if nights > 21 {
			nights = 21
		}

		rate := profile.baseRate * seasonality[arrival.Month()] * (0.85 + rng.Float64()*0.3)
		if rng.Intn(200) == 0 {
			rate *= 10
		}

		departure := arrival.AddDate(0, 0, nights)
		if rng.Intn(100) == 0 {
			departure = arrival.AddDate(0, 0, -1)
		}

		out = append(out, Reservation{
			ID:            i + 1,
			ArrivalDate:   arrival,
			DepartureDate: departure,
			DailyRate:     math.Round(rate*100) / 100,
			RoomType:      profile.name,
			Guests:        1 + rng.Intn(profile.maxGuests),
			Room:          profile.rooms[rng.Intn(len(profile.rooms))],
		})
	}
	return out
}

// SeedDatabase crée la table reservations et la remplit
func SeedDatabase(count int, seed int64) error {
	fmt.Println("🌱 Création du schéma...")
	if _, err := DB.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := DB.Exec("TRUNCATE reservations RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncate reservations: %w", err)
	}

	reservations := GenerateReservations(count, seed)
	fmt.Printf("   🛏️  Insertion de %d réservations...\n", len(reservations))

	const batchSize = 1000
	for i := 0; i < len(reservations); i += batchSize {
		end := i + batchSize
		if end > len(reservations) {
			end = len(reservations)
		}

		// NamedExec avec une slice génère un INSERT multi-lignes
		_, err := DB.NamedExec(`
			INSERT INTO reservations (arrival_date, departure_date, daily_rate, room_type, guests, room)
			VALUES (:arrival_date, :departure_date, :daily_rate, :room_type, :guests, :room)
		`, reservations[i:end])
		if err != nil {
			return fmt.Errorf("insert batch %d: %w", i/batchSize, err)
		}
	}
	fmt.Printf("   ✅ %d réservations créées\n", len(reservations))

	fmt.Println("🔍 Analyse de la table...")
	if _, err := DB.Exec("ANALYZE reservations"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}
	return nil
}
