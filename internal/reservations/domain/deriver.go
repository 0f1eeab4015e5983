package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	ingestdomain "innsight/internal/ingest/domain"
	"innsight/internal/shared/domain"
)

// DefaultCurrency devise utilisée quand aucune n'est configurée
const DefaultCurrency = "R$"

// DeriveOptions paramètres de la dérivation
type DeriveOptions struct {
	DayFirst bool
	Currency string
	Now      func() time.Time
}

// DeriveReport compte les lignes écartées à chaque étape (avertissements non bloquants)
type DeriveReport struct {
	InputRows        int
	MissingDates     int
	InvalidDateOrder int
	InvalidValues    int
	TrimmedOutliers  int
	Kept             int
	Bounds           RateBounds
}

// Warnings retourne les messages d'avertissement destinés à l'utilisateur
func (r DeriveReport) Warnings() []string {
	warnings := make([]string, 0, 4)
	if r.InvalidDateOrder > 0 {
		warnings = append(warnings, fmt.Sprintf("%d reservations with departure on or before arrival were removed", r.InvalidDateOrder))
	}
	if r.MissingDates > 0 {
		warnings = append(warnings, fmt.Sprintf("%d reservations without arrival or departure date were removed", r.MissingDates))
	}
	if r.InvalidValues > 0 {
		warnings = append(warnings, fmt.Sprintf("%d reservations with an invalid rate, guest count, room or room type were removed", r.InvalidValues))
	}
	if r.TrimmedOutliers > 0 {
		warnings = append(warnings, fmt.Sprintf("%d reservations with a daily rate outside [%.2f, %.2f] were removed", r.TrimmedOutliers, r.Bounds.Low, r.Bounds.High))
	}
	return warnings
}

// candidate ligne validée en attente du filtre de percentiles
type candidate struct {
	reservation *Reservation
	rate        float64
}

// Derive convertit un tableau normalisé en tableau canonique:
//  1. dates converties (vide = ligne écartée, texte illisible = échec du chargement)
//  2. départ <= arrivée écarté et compté
//  3. nuits, revenu, mois, année, jour de semaine calculés
//  4. tarifs hors [P1, P99] écartés, percentiles recalculés à chaque chargement
func Derive(table *ingestdomain.NormalizedTable, opts DeriveOptions) (*CanonicalTable, DeriveReport, error) {
	if table == nil || table.Len() == 0 {
		return nil, DeriveReport{}, ingestdomain.NewEmptyFile("")
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	report := DeriveReport{InputRows: table.Len()}
	col := func(c ingestdomain.Concept) int { return table.Binding.Index(c) }

	candidates := make([]candidate, 0, table.Len())
	for i := range table.Rows {
		// numéro de ligne du tableur: en-tête en ligne 1
		sheetRow := i + 2

		arrivalText := table.Cell(i, col(ingestdomain.ArrivalDate))
		departureText := table.Cell(i, col(ingestdomain.DepartureDate))
		if strings.TrimSpace(arrivalText) == "" || strings.TrimSpace(departureText) == "" {
			report.MissingDates++
			continue
		}

		arrival, err := ParseDate(arrivalText, opts.DayFirst)
		if err != nil {
			return nil, report, ingestdomain.NewDateParseFailure(string(ingestdomain.ArrivalDate), sheetRow, arrivalText, err)
		}
		departure, err := ParseDate(departureText, opts.DayFirst)
		if err != nil {
			return nil, report, ingestdomain.NewDateParseFailure(string(ingestdomain.DepartureDate), sheetRow, departureText, err)
		}

		rate, err := parseRate(table.Cell(i, col(ingestdomain.DailyRate)), opts.Currency)
		if err != nil {
			report.InvalidValues++
			continue
		}
		guests, err := parseGuests(table.Cell(i, col(ingestdomain.GuestCount)))
		if err != nil {
			report.InvalidValues++
			continue
		}

		reservation, err := NewReservation(
			arrival,
			departure,
			rate,
			table.Cell(i, col(ingestdomain.RoomType)),
			guests,
			RoomID(strings.TrimSpace(table.Cell(i, col(ingestdomain.Room)))),
		)
		if errors.Is(err, ErrInvalidDateOrder) {
			report.InvalidDateOrder++
			continue
		}
		if err != nil {
			report.InvalidValues++
			continue
		}

		candidates = append(candidates, candidate{reservation: reservation, rate: rate.Amount()})
	}

	rates := make([]float64, len(candidates))
	for i, c := range candidates {
		rates[i] = c.rate
	}
	report.Bounds = NewRateBounds(rates)

	kept := make([]*Reservation, 0, len(candidates))
	for _, c := range candidates {
		if !report.Bounds.Contains(c.rate) {
			report.TrimmedOutliers++
			continue
		}
		kept = append(kept, c.reservation)
	}
	report.Kept = len(kept)

	return NewCanonicalTable(table.Name, opts.Currency, kept, opts.Now()), report, nil
}

// parseRate lit un tarif non négatif ("150", "150,50", "R$ 1.234,50", "1,234.50")
func parseRate(value, currency string) (domain.Money, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), currency)
	v = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)

	amount, err := decimal.NewFromString(normalizeDecimal(v))
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid daily rate %q: %w", value, err)
	}
	return domain.NewMoneyFromDecimal(amount, currency)
}

// normalizeDecimal ramène un montant localisé à la notation pointée.
// Avec les deux séparateurs, le dernier est décimal ("1.234,50", "1,234.50").
// Une virgule seule n'est décimale que suivie de 1 ou 2 chiffres ("150,5"), sinon elle groupe ("1,234").
func normalizeDecimal(v string) string {
	comma := strings.LastIndex(v, ",")
	dot := strings.LastIndex(v, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			return strings.Replace(strings.ReplaceAll(v, ".", ""), ",", ".", 1)
		}
		return strings.ReplaceAll(v, ",", "")
	case comma >= 0:
		if digits := len(v) - comma - 1; strings.Count(v, ",") == 1 && digits >= 1 && digits <= 2 {
			return strings.Replace(v, ",", ".", 1)
		}
		return strings.ReplaceAll(v, ",", "")
	case strings.Count(v, ".") > 1:
		return strings.ReplaceAll(v, ".", "")
	}
	return v
}

// parseGuests lit un nombre d'hôtes entier strictement positif ("2" ou "2.0")
func parseGuests(value string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid guest count %q: %w", value, err)
	}
	if !d.IsInteger() || !d.IsPositive() {
		return 0, fmt.Errorf("guest count must be a positive integer, got %q", value)
	}
	return int(d.IntPart()), nil
}
