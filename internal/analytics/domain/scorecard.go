package domain

import (
	"fmt"

	"innsight/internal/shared/domain"
)

// Statuts de scorecard
const (
	StatusInProgress = "in_progress"
	StatusAchieved   = "achieved"
	StatusAttention  = "attention"
	StatusDone       = "done"
)

// Objectifs dérivés des KPIs courants
const (
	revparTargetFactor = 1.10
	adrFloorFactor     = 0.95
)

// ScorecardRow ligne du balanced scorecard
type ScorecardRow struct {
	Perspective string `json:"perspective"`
	Objective   string `json:"objective"`
	Indicator   string `json:"indicator"`
	Status      string `json:"status"`
}

// BuildScorecard construit le tableau statique à quatre perspectives.
// Seuls les montants dépendent des KPIs: RevPAR cible +10%, plancher ADR -5%.
func BuildScorecard(kpis KPISnapshot) []ScorecardRow {
	return []ScorecardRow{
		{
			Perspective: "Financial",
			Objective:   fmt.Sprintf("Raise RevPAR to %s (+10%%)", scaled(kpis.RevPAR, revparTargetFactor).Format(0)),
			Indicator:   fmt.Sprintf("Current RevPAR: %s", kpis.RevPAR.Format(0)),
			Status:      StatusInProgress,
		},
		{
			Perspective: "Customers",
			Objective:   fmt.Sprintf("Keep average ADR above %s", scaled(kpis.AvgDailyRate, adrFloorFactor).Format(0)),
			Indicator:   fmt.Sprintf("Current ADR: %s", kpis.AvgDailyRate.Format(0)),
			Status:      StatusAchieved,
		},
		{
			Perspective: "Internal processes",
			Objective:   "Cut check-in/check-out time by 15%",
			Indicator:   fmt.Sprintf("Average stay: %.1f nights", kpis.AvgNights),
			Status:      StatusAttention,
		},
		{
			Perspective: "Learning & growth",
			Objective:   "Roll out predictive analytics",
			Indicator:   "Dashboard in place",
			Status:      StatusDone,
		},
	}
}

func scaled(m domain.Money, factor float64) domain.Money {
	out, err := m.Multiply(factor)
	if err != nil {
		return m
	}
	return out
}

// Footer résumé affiché en bas du tableau de bord
type Footer struct {
	Reservations int    `json:"reservations"`
	PeriodStart  string `json:"periodStart,omitempty"`
	PeriodEnd    string `json:"periodEnd,omitempty"`
}

// BuildFooter nombre de réservations analysées et période d'arrivée couverte
func BuildFooter(filtered *FilteredTable) Footer {
	footer := Footer{Reservations: filtered.Len()}
	if rng, ok := filtered.ArrivalRange(); ok {
		footer.PeriodStart = rng.Start().Format(domain.DateLayout)
		footer.PeriodEnd = rng.End().Format(domain.DateLayout)
	}
	return footer
}
