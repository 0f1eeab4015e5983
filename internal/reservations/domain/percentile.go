package domain

import (
	"math"
	"sort"
)

// Percentile retourne le p-ième percentile par rang le plus proche (nearest-rank).
// values n'est pas modifié. Retourne 0 pour une entrée vide.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// RateBounds bornes [P1, P99] utilisées pour écarter les tarifs aberrants
type RateBounds struct {
	Low  float64
	High float64
}

// NewRateBounds calcule P1 et P99 sur l'ensemble des tarifs
func NewRateBounds(rates []float64) RateBounds {
	return RateBounds{
		Low:  Percentile(rates, 1),
		High: Percentile(rates, 99),
	}
}

// Contains vérifie si rate est dans l'intervalle fermé [Low, High]
func (b RateBounds) Contains(rate float64) bool {
	return rate >= b.Low && rate <= b.High
}
