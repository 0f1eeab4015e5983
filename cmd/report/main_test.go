package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	analyticsapp "innsight/internal/analytics/application"
	ingestapp "innsight/internal/ingest/application"
	sharedinfra "innsight/internal/shared/infrastructure"
	"innsight/internal/testhelpers"
)

func TestBuildQuery(t *testing.T) {
	q, err := buildQuery("2024-01-01", "2024-01-31", []string{"Suite", " Standard"}, "all")
	if err != nil {
		t.Fatal(err)
	}
	if q.Range == nil || q.Range.Days() != 31 {
		t.Errorf("Unexpected range %v", q.Range)
	}
	if q.RoomTypes.IsAll() || !q.RoomTypes.Contains("Standard") || q.RoomTypes.Contains("Deluxe") {
		t.Error("Room types should be restricted to Suite and Standard")
	}
	if !q.Guests.IsAll() {
		t.Error("Guests should be unrestricted")
	}

	tests := []struct {
		start, end string
		roomTypes  []string
		guests     string
	}{
		{"2024-01-01", "", nil, "all"},
		{"", "", nil, "two"},
		{"2024-02-01", "2024-01-01", nil, "all"},
	}
	for _, tt := range tests {
		if _, err := buildQuery(tt.start, tt.end, tt.roomTypes, tt.guests); err == nil {
			t.Errorf("Expected an error for %+v", tt)
		}
	}
}

func TestBuildQueryRoomTypeFlag(t *testing.T) {
	var roomTypes listFlag
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.Var(&roomTypes, "room-type", "")
	if err := fs.Parse([]string{"-room-type", "Suite, Ocean View"}); err != nil {
		t.Fatal(err)
	}

	q, err := buildQuery("", "", roomTypes, "1,2")
	if err != nil {
		t.Fatal(err)
	}
	if !q.RoomTypes.Contains("Suite, Ocean View") || q.RoomTypes.Contains("Suite") {
		t.Errorf("Room type with a comma should stay a single value, got %v", q.RoomTypes.Values())
	}
	if !q.Guests.Contains(1) || !q.Guests.Contains(2) {
		t.Errorf("Guests = %v", q.Guests.Values())
	}

	for _, flags := range [][]string{nil, {"all"}, {"Suite", "ALL"}} {
		q, err := buildQuery("", "", flags, "all")
		if err != nil {
			t.Fatal(err)
		}
		if !q.RoomTypes.IsAll() {
			t.Errorf("%v should not restrict room types", flags)
		}
	}
}

func TestPrintReport(t *testing.T) {
	loader := ingestapp.NewLoadService(sharedinfra.NewSlotCache(), nil, ingestapp.LoadOptions{})
	svc := analyticsapp.NewDashboardService(loader, nil, nil)
	ctx := context.Background()
	if _, err := svc.Upload(ctx, "reservations.csv", []byte(testhelpers.ScenarioCSV)); err != nil {
		t.Fatal(err)
	}
	d, err := svc.Dashboard(ctx, analyticsapp.DefaultQuery())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	printReport(&out, d)
	report := out.String()

	for _, want := range []string{"Total Revenue     : R$ 350.00", "Average Stay      : 1.5 nights", "BALANCED SCORECARD", "2 reservations analysed, 2024-01-01 to 2024-02-01"} {
		if !strings.Contains(report, want) {
			t.Errorf("Report is missing %q:\n%s", want, report)
		}
	}
}
