package domain

import (
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	reservationsdomain "innsight/internal/reservations/domain"
)

// Types de graphique, interprétés par la couche de rendu
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartLine = "line"
)

// maxNightsBuckets nombre de durées de séjour affichées (les plus fréquentes)
const maxNightsBuckets = 10

// ChartConfig graphique prêt à rendre
type ChartConfig struct {
	ChartType string        `json:"chartType"`
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis,omitempty"`
	YAxis     string        `json:"yAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
}

// ChartSeries série de points
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint point d'une série
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Charts ensemble des graphiques du tableau de bord
type Charts struct {
	RevenueByRoomType ChartConfig   `json:"revenueByRoomType"`
	GuestDistribution ChartConfig   `json:"guestDistribution"`
	MonthlyRevenue    ChartConfig   `json:"monthlyRevenue"`
	ADRByRoomType     ChartConfig   `json:"adrByRoomType"`
	WeekdayOccupancy  ChartConfig   `json:"weekdayOccupancy"`
	NightsHistogram   ChartConfig   `json:"nightsHistogram"`
	MonthlyGrid       []ChartConfig `json:"monthlyGrid"`
}

// weekdayOrder lundi → dimanche
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

type reservations = []*reservationsdomain.Reservation

// BuildCharts agrège la vue filtrée en séries. Une vue vide donne des séries vides.
func BuildCharts(filtered *FilteredTable) Charts {
	rows := filtered.Reservations()

	byRoomType := lo.GroupBy(rows, func(r *reservationsdomain.Reservation) string { return r.RoomType() })
	byMonth := lo.GroupBy(rows, func(r *reservationsdomain.Reservation) string { return r.Month() })

	return Charts{
		RevenueByRoomType: single(ChartBar, "Revenue by room type", "Room Type", "Revenue",
			points(byRoomType, func(g reservations) float64 { return sumRevenue(g).InexactFloat64() })),
		GuestDistribution: single(ChartPie, "Guest count distribution", "No Of Guests", "Reservations",
			guestPoints(rows)),
		MonthlyRevenue: single(ChartLine, "Monthly revenue trend", "Month", "Revenue",
			points(byMonth, func(g reservations) float64 { return sumRevenue(g).InexactFloat64() })),
		ADRByRoomType: single(ChartBar, "Average daily rate by room type", "Room Type", "ADR",
			points(byRoomType, func(g reservations) float64 { return meanRate(g).InexactFloat64() })),
		WeekdayOccupancy: single(ChartBar, "Reservations by arrival weekday", "Weekday", "Reservations",
			weekdayPoints(rows)),
		NightsHistogram: single(ChartBar, "Length of stay", "Nights", "Reservations",
			nightsPoints(rows)),
		MonthlyGrid: []ChartConfig{
			single(ChartLine, "Monthly revenue", "Month", "Revenue",
				points(byMonth, func(g reservations) float64 { return sumRevenue(g).InexactFloat64() })),
			single(ChartLine, "Average ADR", "Month", "ADR",
				points(byMonth, func(g reservations) float64 { return meanRate(g).InexactFloat64() })),
			single(ChartLine, "Average stay", "Month", "Nights",
				points(byMonth, meanNights)),
			single(ChartLine, "Unique rooms", "Month", "Rooms",
				points(byMonth, func(g reservations) float64 { return float64(uniqueRooms(g)) })),
		},
	}
}

func single(chartType, title, x, y string, data []ChartPoint) ChartConfig {
	return ChartConfig{
		ChartType: chartType,
		Title:     title,
		XAxis:     x,
		YAxis:     y,
		Series:    []ChartSeries{{Name: y, Data: data}},
	}
}

// points réduit chaque groupe, clés en ordre croissant
func points(groups map[string]reservations, reduce func(reservations) float64) []ChartPoint {
	keys := lo.Keys(groups)
	sort.Strings(keys)

	out := make([]ChartPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, ChartPoint{Label: k, Value: reduce(groups[k])})
	}
	return out
}

func guestPoints(rows reservations) []ChartPoint {
	counts := lo.CountValuesBy(rows, func(r *reservationsdomain.Reservation) int { return r.Guests() })
	guests := lo.Keys(counts)
	sort.Ints(guests)

	out := make([]ChartPoint, 0, len(guests))
	for _, g := range guests {
		out = append(out, ChartPoint{Label: strconv.Itoa(g), Value: float64(counts[g])})
	}
	return out
}

// weekdayPoints les sept jours, du lundi au dimanche, y compris ceux sans arrivée
func weekdayPoints(rows reservations) []ChartPoint {
	counts := lo.CountValuesBy(rows, func(r *reservationsdomain.Reservation) time.Weekday { return r.Weekday() })
	if len(rows) == 0 {
		return []ChartPoint{}
	}

	out := make([]ChartPoint, 0, len(weekdayOrder))
	for _, d := range weekdayOrder {
		out = append(out, ChartPoint{Label: d.String(), Value: float64(counts[d])})
	}
	return out
}

// nightsPoints les durées les plus fréquentes (égalité: durée la plus courte d'abord)
func nightsPoints(rows reservations) []ChartPoint {
	counts := lo.CountValuesBy(rows, func(r *reservationsdomain.Reservation) int { return r.Nights() })
	nights := lo.Keys(counts)
	sort.Slice(nights, func(i, j int) bool {
		if counts[nights[i]] != counts[nights[j]] {
			return counts[nights[i]] > counts[nights[j]]
		}
		return nights[i] < nights[j]
	})
	if len(nights) > maxNightsBuckets {
		nights = nights[:maxNightsBuckets]
	}

	out := make([]ChartPoint, 0, len(nights))
	for _, n := range nights {
		out = append(out, ChartPoint{Label: strconv.Itoa(n), Value: float64(counts[n])})
	}
	return out
}

func meanNights(rows reservations) float64 {
	if len(rows) == 0 {
		return 0
	}
	return float64(lo.SumBy(rows, func(r *reservationsdomain.Reservation) int { return r.Nights() })) / float64(len(rows))
}

func uniqueRooms(rows reservations) int {
	return len(lo.UniqBy(rows, func(r *reservationsdomain.Reservation) reservationsdomain.RoomID { return r.Room() }))
}
