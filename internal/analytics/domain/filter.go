package domain

import (
	"github.com/samber/lo"

	reservationsdomain "innsight/internal/reservations/domain"
	"innsight/internal/shared/domain"
)

// AllSentinel valeur qui, dans une sélection, signifie "aucune restriction"
const AllSentinel = "all"

// Selection sélection multiple sur une dimension catégorielle.
// La valeur zéro est une sélection vide explicite (aucune ligne ne passe).
type Selection[T comparable] struct {
	all    bool
	values map[T]struct{}
}

// All retourne une sélection sans restriction
func All[T comparable]() Selection[T] {
	return Selection[T]{all: true}
}

// Only retourne une sélection limitée aux valeurs données (vide = aucun résultat)
func Only[T comparable](values ...T) Selection[T] {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Selection[T]{values: set}
}

// IsAll indique si la sélection est le sentinel "tout"
func (s Selection[T]) IsAll() bool {
	return s.all
}

// Contains vérifie si v passe la sélection
func (s Selection[T]) Contains(v T) bool {
	if s.all {
		return true
	}
	_, ok := s.values[v]
	return ok
}

// Values retourne les valeurs explicites (nil pour "tout")
func (s Selection[T]) Values() []T {
	if s.all {
		return nil
	}
	return lo.Keys(s.values)
}

// FilterParams paramètres de filtrage choisis par l'utilisateur
type FilterParams struct {
	Range     domain.DateRange
	RoomTypes Selection[string]
	Guests    Selection[int]
}

// DefaultParams couvre toute la plage d'arrivées avec toutes les catégories
func DefaultParams(table *reservationsdomain.CanonicalTable) FilterParams {
	rng, _ := table.ArrivalRange()
	return FilterParams{
		Range:     rng,
		RoomTypes: All[string](),
		Guests:    All[int](),
	}
}

// FilteredTable vue du tableau canonique restreinte par les filtres
type FilteredTable struct {
	canonical    *reservationsdomain.CanonicalTable
	params       FilterParams
	reservations []*reservationsdomain.Reservation
}

// Apply filtre le tableau canonique. Fonction pure: même entrée, même sortie.
// La plage de dates est inclusive et comparée sur la date d'arrivée uniquement.
// Une plage zéro n'applique aucune restriction de date.
func Apply(table *reservationsdomain.CanonicalTable, params FilterParams) *FilteredTable {
	kept := lo.Filter(table.Reservations(), func(r *reservationsdomain.Reservation, _ int) bool {
		if !params.Range.IsZero() && !params.Range.Contains(r.Arrival()) {
			return false
		}
		return params.RoomTypes.Contains(r.RoomType()) && params.Guests.Contains(r.Guests())
	})

	return &FilteredTable{
		canonical:    table,
		params:       params,
		reservations: kept,
	}
}

// Len retourne le nombre de réservations retenues
func (f *FilteredTable) Len() int {
	return len(f.reservations)
}

// Reservations retourne les réservations retenues (lecture seule)
func (f *FilteredTable) Reservations() []*reservationsdomain.Reservation {
	return f.reservations
}

// Canonical retourne le tableau d'origine
func (f *FilteredTable) Canonical() *reservationsdomain.CanonicalTable {
	return f.canonical
}

// Params retourne les paramètres appliqués
func (f *FilteredTable) Params() FilterParams {
	return f.params
}

// Currency retourne la devise des montants
func (f *FilteredTable) Currency() string {
	if f.canonical == nil || f.canonical.Currency() == "" {
		return reservationsdomain.DefaultCurrency
	}
	return f.canonical.Currency()
}

// ArrivalRange retourne [min, max] des arrivées retenues; faux si vide
func (f *FilteredTable) ArrivalRange() (domain.DateRange, bool) {
	if f.Len() == 0 {
		return domain.DateRange{}, false
	}
	first, last := f.reservations[0].Arrival(), f.reservations[0].Arrival()
	for _, r := range f.reservations[1:] {
		if r.Arrival().Before(first) {
			first = r.Arrival()
		}
		if r.Arrival().After(last) {
			last = r.Arrival()
		}
	}
	dr, err := domain.NewDateRange(first, last)
	return dr, err == nil
}
