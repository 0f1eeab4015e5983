package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"  arrival date ":  "Arrival Date",
		"ADR":              "Adr",
		"check-in":         "Check-In",
		"NO OF GUESTS":     "No Of Guests",
		"data de saída":    "Data De Saída",
		"número do quarto": "Número Do Quarto",
		"room_2nd":         "Room_2Nd",
		"":                 "",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveAliasedHeaders(t *testing.T) {
	n := NewNormalizer(nil)
	binding, err := n.Resolve([]string{"Check-In", "Check-Out", "ADR", "Type", "Pax", "Quarto"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := ColumnBinding{
		ArrivalDate:   0,
		DepartureDate: 1,
		DailyRate:     2,
		RoomType:      3,
		GuestCount:    4,
		Room:          5,
	}
	if !reflect.DeepEqual(binding, want) {
		t.Errorf("binding = %v, want %v", binding, want)
	}
}

func TestResolvePrefersFirstSynonymInPriorityOrder(t *testing.T) {
	n := NewNormalizer(nil)
	// "Price" et "Daily Rate" sont tous deux des synonymes: "Daily Rate" est prioritaire
	headers := []string{"Price", "Arrival", "Departure", "Daily Rate", "Room Type", "Guests", "Room"}
	binding, err := n.Resolve(headers)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Index(DailyRate) != 3 {
		t.Errorf("Daily Rate bound to column %d, want 3", binding.Index(DailyRate))
	}
}

func TestResolveMissingDailyRate(t *testing.T) {
	n := NewNormalizer(nil)
	_, err := n.Resolve([]string{"Arrival Date", "Departure Date", "Room Type", "No Of Guests", "Room", "Notes"})
	if err == nil {
		t.Fatal("Expected MissingColumns error")
	}
	if !IsKind(err, KindMissingColumns) {
		t.Fatalf("Expected MissingColumns kind, got %v", err)
	}

	le := err.(*LoadError)
	if !reflect.DeepEqual(le.Missing, []string{"Daily Rate"}) {
		t.Errorf("Missing = %v, want [Daily Rate]", le.Missing)
	}
	if len(le.Available) != 6 || le.Available[5] != "Notes" {
		t.Errorf("Available = %v", le.Available)
	}
}

func TestResolveReportsEveryMissingConcept(t *testing.T) {
	n := NewNormalizer(nil)
	_, err := n.Resolve([]string{"Room"})
	le, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("Expected *LoadError, got %T", err)
	}
	want := []string{"Arrival Date", "Departure Date", "Daily Rate", "Room Type", "No Of Guests"}
	if !reflect.DeepEqual(le.Missing, want) {
		t.Errorf("Missing = %v, want %v", le.Missing, want)
	}
}

func TestNormalizeRenamesAndPassesThroughExtras(t *testing.T) {
	raw := &RawTable{
		Name:    "test.xlsx",
		Headers: []string{" checkin", "checkout", "tarifa diária", "category", "hóspedes", "room number", "canal"},
		Rows:    [][]string{{"2024-01-01", "2024-01-03", "100", "Suite", "2", "101", "Booking"}},
	}

	table, err := NewNormalizer(nil).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []string{"Arrival Date", "Departure Date", "Daily Rate", "Room Type", "No Of Guests", "Room", "Canal"}
	if !reflect.DeepEqual(table.Headers, want) {
		t.Errorf("Headers = %v, want %v", table.Headers, want)
	}
	if table.Cell(0, 6) != "Booking" {
		t.Error("Extra column should be passed through unchanged")
	}
}

func TestAliasOrderIndependence(t *testing.T) {
	// Un fichier aux synonymes et un fichier aux noms canoniques donnent le même tableau
	rows := [][]string{{"2024-01-01", "2024-01-03", "100", "Suite", "2", "101"}}
	canonical := &RawTable{Headers: []string{"Arrival Date", "Departure Date", "Daily Rate", "Room Type", "No Of Guests", "Room"}, Rows: rows}
	aliased := &RawTable{Headers: []string{"Check-In", "Check-Out", "ADR", "Type", "Pax", "Quarto"}, Rows: rows}

	n := NewNormalizer(nil)
	a, err := n.Normalize(canonical)
	if err != nil {
		t.Fatal(err)
	}
	b, err := n.Normalize(aliased)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Headers, b.Headers) || !reflect.DeepEqual(a.Binding, b.Binding) {
		t.Errorf("Expected identical normalization, got %v / %v", a.Headers, b.Headers)
	}
}

func TestNormalizeEmptyTable(t *testing.T) {
	_, err := NewNormalizer(nil).Normalize(&RawTable{Name: "empty.xlsx", Headers: []string{"Room"}})
	if !IsKind(err, KindEmptyFile) {
		t.Errorf("Expected EmptyFile, got %v", err)
	}
}

func TestNewRawTableSkipsBlankRows(t *testing.T) {
	grid := [][]string{
		{"Room", "Rate"},
		{"101", "100"},
		{"", " "},
		{},
	}
	table, err := NewRawTable("grid", grid)
	if err != nil {
		t.Fatalf("NewRawTable failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
	if table.Cell(0, 5) != "" {
		t.Error("Out of range cell should be empty")
	}

	if _, err := NewRawTable("only-header", [][]string{{"Room"}}); !IsKind(err, KindEmptyFile) {
		t.Errorf("Expected EmptyFile for header-only grid, got %v", err)
	}
}

func TestAliasSetExtend(t *testing.T) {
	aliases := DefaultAliases()
	aliases.Extend(DailyRate, "Valor Diária", "ADR", "valor diária")

	syn := aliases.Synonyms(DailyRate)
	if syn[len(syn)-1] != "Valor Diária" {
		t.Errorf("Expected new synonym at lowest priority, got %v", syn)
	}
	if len(syn) != 6 {
		t.Errorf("Duplicates should be ignored, got %v", syn)
	}

	n := NewNormalizer(aliases)
	if _, err := n.Resolve([]string{"Arrival", "Departure", "valor diária", "Type", "Pax", "Room"}); err != nil {
		t.Errorf("Extended synonym should resolve: %v", err)
	}
}

func TestParseConcept(t *testing.T) {
	c, err := ParseConcept("daily rate")
	if err != nil || c != DailyRate {
		t.Errorf("ParseConcept = %v, %v", c, err)
	}
	if _, err := ParseConcept("Breakfast"); err == nil {
		t.Error("Expected error for unknown concept")
	}
}
