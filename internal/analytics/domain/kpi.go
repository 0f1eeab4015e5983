package domain

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	reservationsdomain "innsight/internal/reservations/domain"
	"innsight/internal/shared/domain"
)

// KPISnapshot les six indicateurs calculés sur la vue filtrée
type KPISnapshot struct {
	TotalRevenue   domain.Money
	Reservations   int
	AvgDailyRate   domain.Money
	AvgNights      float64
	OccupancyRatio float64
	RevPAR         domain.Money
}

// ComputeKPIs réduit la vue filtrée en indicateurs.
// Aucune division par zéro: une vue vide donne six valeurs nulles.
//   - Occupation = |filtré| / |canonique|, toujours dans [0, 1]
//   - RevPAR = revenu total / chambres distinctes de la vue filtrée
func ComputeKPIs(filtered *FilteredTable) KPISnapshot {
	currency := filtered.Currency()
	snapshot := KPISnapshot{
		TotalRevenue: domain.ZeroMoney(currency),
		AvgDailyRate: domain.ZeroMoney(currency),
		RevPAR:       domain.ZeroMoney(currency),
	}

	rows := filtered.Reservations()
	n := len(rows)
	if n == 0 {
		return snapshot
	}

	revenue := sumDecimal(rows, func(r *reservationsdomain.Reservation) decimal.Decimal { return r.Revenue().Decimal() })
	rates := sumDecimal(rows, func(r *reservationsdomain.Reservation) decimal.Decimal { return r.DailyRate().Decimal() })
	nights := lo.SumBy(rows, func(r *reservationsdomain.Reservation) int { return r.Nights() })
	rooms := uniqueRooms(rows)

	snapshot.Reservations = n
	snapshot.TotalRevenue = money(revenue, currency)
	snapshot.AvgDailyRate = money(rates.Div(decimal.NewFromInt(int64(n))), currency)
	snapshot.AvgNights = float64(nights) / float64(n)

	if total := filtered.Canonical().Len(); total > 0 {
		snapshot.OccupancyRatio = float64(n) / float64(total)
	}
	if rooms > 0 {
		snapshot.RevPAR = money(revenue.Div(decimal.NewFromInt(int64(rooms))), currency)
	}

	return snapshot
}

func sumDecimal(rows []*reservationsdomain.Reservation, value func(*reservationsdomain.Reservation) decimal.Decimal) decimal.Decimal {
	return lo.Reduce(rows, func(acc decimal.Decimal, r *reservationsdomain.Reservation, _ int) decimal.Decimal {
		return acc.Add(value(r))
	}, decimal.Zero)
}

// money construit un montant déjà validé (sommes et moyennes de montants positifs)
func money(amount decimal.Decimal, currency string) domain.Money {
	m, err := domain.NewMoneyFromDecimal(amount, currency)
	if err != nil {
		return domain.ZeroMoney(currency)
	}
	return m
}
