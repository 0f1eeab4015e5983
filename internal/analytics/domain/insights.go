package domain

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	reservationsdomain "innsight/internal/reservations/domain"
	"innsight/internal/shared/domain"
)

// Insight résultat optionnel d'un argmax/argmin sur un regroupement.
// Present faux = pas de données (vue filtrée vide), jamais une erreur.
type Insight struct {
	Present bool
	Key     string
	Value   domain.Money
}

// GuestProfile nombre moyen d'hôtes par réservation
type GuestProfile struct {
	Present    bool
	MeanGuests float64
}

// Insights constats textuels dérivés de la vue filtrée
type Insights struct {
	BestPerformer Insight
	Opportunity   Insight
	BestSeason    Insight
	GuestProfile  GuestProfile
}

// DeriveInsights calcule:
//   - BestPerformer: type de chambre au revenu total maximal
//   - Opportunity: type de chambre au tarif moyen minimal
//   - BestSeason: mois au revenu total maximal
//
// En cas d'égalité, la première clé dans l'ordre croissant l'emporte.
func DeriveInsights(filtered *FilteredTable) Insights {
	rows := filtered.Reservations()
	currency := filtered.Currency()
	if len(rows) == 0 {
		return Insights{}
	}

	byRoomType := lo.GroupBy(rows, func(r *reservationsdomain.Reservation) string { return r.RoomType() })
	byMonth := lo.GroupBy(rows, func(r *reservationsdomain.Reservation) string { return r.Month() })

	revenueByType := aggregate(byRoomType, sumRevenue)
	rateByType := aggregate(byRoomType, meanRate)
	revenueByMonth := aggregate(byMonth, sumRevenue)

	guests := lo.SumBy(rows, func(r *reservationsdomain.Reservation) int { return r.Guests() })

	return Insights{
		BestPerformer: pick(revenueByType, currency, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }),
		Opportunity:   pick(rateByType, currency, func(a, b decimal.Decimal) bool { return a.LessThan(b) }),
		BestSeason:    pick(revenueByMonth, currency, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }),
		GuestProfile: GuestProfile{
			Present:    true,
			MeanGuests: float64(guests) / float64(len(rows)),
		},
	}
}

// Messages rend les constats présents en phrases pour l'affichage
func (i Insights) Messages() []string {
	messages := make([]string, 0, 4)
	if i.BestPerformer.Present {
		messages = append(messages, fmt.Sprintf("Best performer: %s is the most profitable room type, generating %s in revenue.",
			i.BestPerformer.Key, i.BestPerformer.Value.Format(0)))
	}
	if i.Opportunity.Present {
		messages = append(messages, fmt.Sprintf("Opportunity: %s rooms have the lowest ADR (%s). Consider upselling strategies.",
			i.Opportunity.Key, i.Opportunity.Value.Format(0)))
	}
	if i.BestSeason.Present {
		messages = append(messages, fmt.Sprintf("Seasonality: best month is %s. Use it to tune pricing and marketing.", i.BestSeason.Key))
	}
	if i.GuestProfile.Present {
		messages = append(messages, fmt.Sprintf("Guest profile: %.1f guests per reservation on average.", i.GuestProfile.MeanGuests))
	}
	if len(messages) == 0 {
		messages = append(messages, "No data for the current filter selection.")
	}
	return messages
}

func sumRevenue(rows []*reservationsdomain.Reservation) decimal.Decimal {
	return sumDecimal(rows, func(r *reservationsdomain.Reservation) decimal.Decimal { return r.Revenue().Decimal() })
}

func meanRate(rows []*reservationsdomain.Reservation) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	total := sumDecimal(rows, func(r *reservationsdomain.Reservation) decimal.Decimal { return r.DailyRate().Decimal() })
	return total.Div(decimal.NewFromInt(int64(len(rows))))
}

func aggregate(groups map[string][]*reservationsdomain.Reservation, reduce func([]*reservationsdomain.Reservation) decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(groups))
	for k, rows := range groups {
		out[k] = reduce(rows)
	}
	return out
}

// pick parcourt les clés triées et garde la première qui bat strictement la courante
func pick(values map[string]decimal.Decimal, currency string, better func(a, b decimal.Decimal) bool) Insight {
	keys := lo.Keys(values)
	if len(keys) == 0 {
		return Insight{}
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if better(values[k], values[best]) {
			best = k
		}
	}
	return Insight{Present: true, Key: best, Value: money(values[best], currency)}
}
