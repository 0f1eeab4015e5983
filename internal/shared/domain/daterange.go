package domain

import (
	"errors"
	"time"
)

// DateLayout est le format calendaire utilisé aux frontières (API, CLI, exports)
const DateLayout = "2006-01-02"

// DateRange période calendaire inclusive aux deux bornes, tronquée au jour
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée une période [start, end] après troncature au jour
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := TruncateDay(start)
	e := TruncateDay(end)
	if e.Before(s) {
		return DateRange{}, errors.New("date range end is before start")
	}
	return DateRange{start: s, end: e}, nil
}

// ParseDateRange construit une période à partir de deux dates au format DateLayout
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, errors.New("invalid start date: " + start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, errors.New("invalid end date: " + end)
	}
	return NewDateRange(s, e)
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// IsZero indique si la période n'a jamais été initialisée
func (dr DateRange) IsZero() bool {
	return dr.start.IsZero() && dr.end.IsZero()
}

// Contains vérifie si t tombe dans la période, bornes incluses, à la précision du jour
func (dr DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(dr.start) && !d.After(dr.end)
}

// Days retourne le nombre de jours calendaires couverts (bornes incluses)
func (dr DateRange) Days() int {
	return DaysBetween(dr.start, dr.end) + 1
}

// String formate la période pour les logs
func (dr DateRange) String() string {
	return dr.start.Format(DateLayout) + ".." + dr.end.Format(DateLayout)
}

// TruncateDay ramène t à minuit UTC du même jour calendaire.
// On garde les composantes année/mois/jour telles que lues dans la source:
// un export de réservations n'a pas de fuseau fiable.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween retourne le nombre de jours calendaires entre from et to (to - from)
func DaysBetween(from, to time.Time) int {
	return int(TruncateDay(to).Sub(TruncateDay(from)).Hours() / 24)
}
