package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	analyticsapp "innsight/internal/analytics/application"
	analyticsdomain "innsight/internal/analytics/domain"
	ingestapp "innsight/internal/ingest/application"
	ingestinfra "innsight/internal/ingest/infrastructure"
	shareddomain "innsight/internal/shared/domain"
	sharedinfra "innsight/internal/shared/infrastructure"
)

func main() {
	file := flag.String("file", ingestinfra.DefaultDataPath(), "fichier de réservations (.xlsx, .xls, .csv)")
	start := flag.String("start", "", "début de la période d'arrivée (YYYY-MM-DD)")
	end := flag.String("end", "", "fin de la période d'arrivée (YYYY-MM-DD)")
	var roomTypes listFlag
	flag.Var(&roomTypes, "room-type", "type de chambre (répétable, \"all\" par défaut)")
	guests := flag.String("guests", "all", "nombres d'hôtes séparés par des virgules")
	dayFirst := flag.Bool("day-first", false, "dates ambiguës au format jour/mois")
	aliases := flag.String("aliases", "", "fichier YAML d'alias de colonnes")
	flag.Parse()

	q, err := buildQuery(*start, *end, roomTypes, *guests)
	if err != nil {
		log.Fatalf("Invalid filter: %v", err)
	}

	aliasSet, err := ingestinfra.LoadAliases(*aliases)
	if err != nil {
		log.Fatalf("Invalid aliases: %v", err)
	}

	logger := sharedinfra.NewLoggerTo(os.Stderr)
	loader := ingestapp.NewLoadService(sharedinfra.NewSlotCache(), logger, ingestapp.LoadOptions{
		Aliases:  aliasSet,
		DayFirst: *dayFirst,
	})
	dashboard := analyticsapp.NewDashboardService(loader, ingestinfra.NewFileSource(*file), logger)

	d, err := dashboard.Dashboard(context.Background(), q)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	printReport(os.Stdout, d)
}

// listFlag drapeau répétable: -room-type Suite -room-type "Suite, Ocean View"
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, "; ")
}

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// buildQuery traduit les drapeaux en requête de filtrage.
// Aucun -room-type ou "all" = aucune restriction; guests accepte une liste séparée par des virgules.
func buildQuery(start, end string, roomTypes []string, guests string) (analyticsapp.Query, error) {
	q := analyticsapp.DefaultQuery()

	if start != "" || end != "" {
		if start == "" || end == "" {
			return q, errors.New("-start and -end must be provided together")
		}
		rng, err := shareddomain.ParseDateRange(start, end)
		if err != nil {
			return q, err
		}
		q.Range = &rng
	}

	if len(roomTypes) > 0 {
		if items, all := trimList(roomTypes); !all {
			q.RoomTypes = analyticsdomain.Only(items...)
		}
	}

	if items, all := trimList(strings.Split(guests, ",")); !all {
		values := make([]int, 0, len(items))
		for _, item := range items {
			n, err := strconv.Atoi(item)
			if err != nil {
				return q, fmt.Errorf("invalid guests value %q", item)
			}
			values = append(values, n)
		}
		q.Guests = analyticsdomain.Only(values...)
	}

	return q, nil
}

func trimList(values []string) ([]string, bool) {
	var items []string
	for _, part := range values {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, analyticsdomain.AllSentinel) {
			return nil, true
		}
		items = append(items, part)
	}
	return items, false
}

// printReport affiche indicateurs, constats et scorecard dans le terminal
func printReport(w io.Writer, d *analyticsapp.Dashboard) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)
	cur := d.KPIs.Currency

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("RESERVATIONS DASHBOARD", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n KPIs\n%s\n", thin)
	fmt.Fprintf(w, "  Total Revenue     : %s %.2f\n", cur, d.KPIs.TotalRevenue)
	fmt.Fprintf(w, "  Reservations      : %d\n", d.KPIs.Reservations)
	fmt.Fprintf(w, "  Average ADR       : %s %.2f\n", cur, d.KPIs.AvgDailyRate)
	fmt.Fprintf(w, "  Average Stay      : %.1f nights\n", d.KPIs.AvgNights)
	fmt.Fprintf(w, "  Occupancy         : %.1f%%\n", d.KPIs.OccupancyRatio*100)
	fmt.Fprintf(w, "  RevPAR            : %s %.2f\n", cur, d.KPIs.RevPAR)

	if len(d.Charts.RevenueByRoomType.Series) > 0 {
		fmt.Fprintf(w, "\n REVENUE BY ROOM TYPE\n%s\n", thin)
		for _, p := range d.Charts.RevenueByRoomType.Series[0].Data {
			fmt.Fprintf(w, "  %-20s %12.2f\n", p.Label+":", p.Value)
		}
	}

	fmt.Fprintf(w, "\n INSIGHTS\n%s\n", thin)
	for _, m := range d.Insights.Messages {
		fmt.Fprintf(w, "  • %s\n", m)
	}

	fmt.Fprintf(w, "\n BALANCED SCORECARD\n%s\n", thin)
	for _, row := range d.Scorecard {
		fmt.Fprintf(w, "  %-20s %s | %s (%s)\n", row.Perspective, row.Objective, row.Indicator, row.Status)
	}

	if len(d.Warnings) > 0 {
		fmt.Fprintf(w, "\n WARNINGS\n%s\n", thin)
		for _, warn := range d.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warn)
		}
	}

	fmt.Fprintf(w, "\n%s\n", border)
	if d.Footer.PeriodStart != "" {
		fmt.Fprintf(w, "  %d reservations analysed, %s to %s\n\n", d.Footer.Reservations, d.Footer.PeriodStart, d.Footer.PeriodEnd)
	} else {
		fmt.Fprintf(w, "  %d reservations analysed\n\n", d.Footer.Reservations)
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}
