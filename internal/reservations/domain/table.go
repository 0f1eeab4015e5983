package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"innsight/internal/shared/domain"
)

// CanonicalTable ensemble des réservations valides après normalisation,
// dérivation et retrait des tarifs aberrants. Construit une fois par fichier source.
type CanonicalTable struct {
	id           uuid.UUID
	source       string
	loadedAt     time.Time
	currency     string
	reservations []*Reservation
}

// NewCanonicalTable crée un tableau canonique identifié par un nouvel ID de chargement
func NewCanonicalTable(source, currency string, reservations []*Reservation, loadedAt time.Time) *CanonicalTable {
	return &CanonicalTable{
		id:           uuid.New(),
		source:       source,
		loadedAt:     loadedAt,
		currency:     currency,
		reservations: reservations,
	}
}

// ID retourne l'identifiant du chargement
func (t *CanonicalTable) ID() uuid.UUID {
	return t.id
}

// Source retourne le nom du document d'origine
func (t *CanonicalTable) Source() string {
	return t.source
}

// LoadedAt retourne l'horodatage du chargement
func (t *CanonicalTable) LoadedAt() time.Time {
	return t.loadedAt
}

// Currency retourne la devise des montants
func (t *CanonicalTable) Currency() string {
	return t.currency
}

// Len retourne le nombre de réservations
func (t *CanonicalTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.reservations)
}

// Reservations retourne les réservations (slice partagée, en lecture seule)
func (t *CanonicalTable) Reservations() []*Reservation {
	if t == nil {
		return nil
	}
	return t.reservations
}

// ArrivalRange retourne [min(arrivée), max(arrivée)]; faux si le tableau est vide
func (t *CanonicalTable) ArrivalRange() (domain.DateRange, bool) {
	if t.Len() == 0 {
		return domain.DateRange{}, false
	}

	lo, hi := t.reservations[0].Arrival(), t.reservations[0].Arrival()
	for _, r := range t.reservations[1:] {
		if r.Arrival().Before(lo) {
			lo = r.Arrival()
		}
		if r.Arrival().After(hi) {
			hi = r.Arrival()
		}
	}

	dr, err := domain.NewDateRange(lo, hi)
	if err != nil {
		return domain.DateRange{}, false
	}
	return dr, true
}

// RoomTypes retourne les types de chambre distincts, triés
func (t *CanonicalTable) RoomTypes() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range t.Reservations() {
		if !seen[r.RoomType()] {
			seen[r.RoomType()] = true
			out = append(out, r.RoomType())
		}
	}
	sort.Strings(out)
	return out
}

// GuestCounts retourne les nombres d'hôtes distincts, triés
func (t *CanonicalTable) GuestCounts() []int {
	seen := make(map[int]bool)
	out := make([]int, 0)
	for _, r := range t.Reservations() {
		if !seen[r.Guests()] {
			seen[r.Guests()] = true
			out = append(out, r.Guests())
		}
	}
	sort.Ints(out)
	return out
}
