package domain

import (
	"errors"
	"strings"
	"time"

	"innsight/internal/shared/domain"
)

// RoomID identifiant d'une chambre, réutilisé par plusieurs réservations
type RoomID string

// ErrInvalidDateOrder signale un départ le même jour ou avant l'arrivée
var ErrInvalidDateOrder = errors.New("departure date must be after arrival date")

// Reservation représente une ligne du tableau canonique (aggregate root).
// Les métriques dérivées sont calculées à la construction et ne changent plus.
type Reservation struct {
	arrival   time.Time
	departure time.Time
	dailyRate domain.Money
	roomType  string
	guests    domain.Quantity
	room      RoomID

	nights  domain.Quantity
	revenue domain.Money
	month   string
	year    int
	weekday time.Weekday
}

// NewReservation crée une réservation avec validation et calcule ses métriques
func NewReservation(
	arrival time.Time,
	departure time.Time,
	dailyRate domain.Money,
	roomType string,
	guests int,
	room RoomID,
) (*Reservation, error) {
	arrival = domain.TruncateDay(arrival)
	departure = domain.TruncateDay(departure)

	nights := domain.DaysBetween(arrival, departure)
	if nights <= 0 {
		return nil, ErrInvalidDateOrder
	}

	guestCount, err := domain.NewPositiveQuantity(guests)
	if err != nil {
		return nil, err
	}
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return nil, errors.New("room type cannot be empty")
	}
	if strings.TrimSpace(string(room)) == "" {
		return nil, errors.New("room cannot be empty")
	}

	return &Reservation{
		arrival:   arrival,
		departure: departure,
		dailyRate: dailyRate,
		roomType:  roomType,
		guests:    guestCount,
		room:      room,
		nights:    domain.MustNewQuantity(nights),
		revenue:   dailyRate.Times(nights),
		month:     arrival.Format("2006-01"),
		year:      arrival.Year(),
		weekday:   arrival.Weekday(),
	}, nil
}

// Arrival retourne la date d'arrivée
func (r *Reservation) Arrival() time.Time {
	return r.arrival
}

// Departure retourne la date de départ
func (r *Reservation) Departure() time.Time {
	return r.departure
}

// DailyRate retourne le tarif journalier
func (r *Reservation) DailyRate() domain.Money {
	return r.dailyRate
}

// RoomType retourne le type de chambre
func (r *Reservation) RoomType() string {
	return r.roomType
}

// Guests retourne le nombre d'hôtes
func (r *Reservation) Guests() int {
	return r.guests.Value()
}

// Room retourne l'identifiant de chambre
func (r *Reservation) Room() RoomID {
	return r.room
}

// Nights retourne le nombre de nuits (départ - arrivée)
func (r *Reservation) Nights() int {
	return r.nights.Value()
}

// Revenue retourne le revenu de la réservation (tarif × nuits)
func (r *Reservation) Revenue() domain.Money {
	return r.revenue
}

// Month retourne le mois d'arrivée au format YYYY-MM
func (r *Reservation) Month() string {
	return r.month
}

// Year retourne l'année d'arrivée
func (r *Reservation) Year() int {
	return r.year
}

// Weekday retourne le jour de la semaine de l'arrivée
func (r *Reservation) Weekday() time.Weekday {
	return r.weekday
}

// WeekdayName retourne le nom anglais du jour d'arrivée
func (r *Reservation) WeekdayName() string {
	return r.weekday.String()
}
