package application

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"innsight/internal/ingest/domain"
	"innsight/internal/ingest/infrastructure"
	sharedinfra "innsight/internal/shared/infrastructure"
)

const scenarioCSV = `Check-In,Check-Out,ADR,Type,Pax,Quarto
2024-01-01,2024-01-03,100,Suite,2,101
2024-01-05,2024-01-04,200,Suite,2,102
2024-02-01,2024-02-02,150,Standard,1,103
`

func newService() (*LoadService, *sharedinfra.SlotCache) {
	cache := sharedinfra.NewSlotCache()
	return NewLoadService(cache, nil, LoadOptions{}), cache
}

func TestLoadScenario(t *testing.T) {
	svc, _ := newService()
	src := infrastructure.NewUploadSource("reservations.csv", []byte(scenarioCSV))

	result, err := svc.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.CacheHit {
		t.Error("First load should not be a cache hit")
	}
	if result.Table.Len() != 2 {
		t.Errorf("Expected 2 reservations, got %d", result.Table.Len())
	}
	if result.Report.InvalidDateOrder != 1 {
		t.Errorf("InvalidDateOrder = %d, want 1", result.Report.InvalidDateOrder)
	}
	if result.Table.Currency() != "R$" {
		t.Errorf("Currency = %s", result.Table.Currency())
	}
}

func TestLoadUsesCacheUntilRefresh(t *testing.T) {
	svc, cache := newService()
	src := infrastructure.NewUploadSource("reservations.csv", []byte(scenarioCSV))
	ctx := context.Background()

	first, err := svc.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit || second.Table != first.Table {
		t.Error("Second load should return the cached table")
	}
	if cache.CurrentKey() != first.Key {
		t.Errorf("Cache key = %s, want %s", cache.CurrentKey(), first.Key)
	}

	svc.Refresh()
	third, err := svc.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit || third.Table.ID() == first.Table.ID() {
		t.Error("Load after refresh should rebuild the table")
	}
}

func TestLoadNewContentEvictsSlot(t *testing.T) {
	svc, cache := newService()
	ctx := context.Background()

	a, err := svc.Load(ctx, infrastructure.NewUploadSource("a.csv", []byte(scenarioCSV)))
	if err != nil {
		t.Fatal(err)
	}
	changed := scenarioCSV + "2024-03-01,2024-03-04,120,Suite,2,101\n"
	b, err := svc.Load(ctx, infrastructure.NewUploadSource("a.csv", []byte(changed)))
	if err != nil {
		t.Fatal(err)
	}
	if a.Key == b.Key {
		t.Error("Different content should produce a different key")
	}
	if cache.Has(a.Key) {
		t.Error("Previous slot should have been evicted")
	}
}

func TestLoadErrors(t *testing.T) {
	svc, cache := newService()
	ctx := context.Background()

	if _, err := svc.Load(ctx, nil); !errors.Is(err, domain.ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}

	noRate := "Arrival,Departure,Type,Pax,Room\n2024-01-01,2024-01-02,Suite,2,101\n"
	_, err := svc.Load(ctx, infrastructure.NewUploadSource("r.csv", []byte(noRate)))
	var le *domain.LoadError
	if !errors.As(err, &le) || le.Kind != domain.KindMissingColumns {
		t.Fatalf("Expected MissingColumns, got %v", err)
	}
	if len(le.Missing) != 1 || le.Missing[0] != "Daily Rate" {
		t.Errorf("Missing = %v", le.Missing)
	}
	if cache.CurrentKey() != "" {
		t.Error("Failed load should not be cached")
	}

	badDate := "Arrival,Departure,Rate,Type,Pax,Room\nsoon,2024-01-02,100,Suite,2,101\n"
	if _, err := svc.Load(ctx, infrastructure.NewUploadSource("r.csv", []byte(badDate))); !domain.IsKind(err, domain.KindDateParseFailure) {
		t.Errorf("Expected DateParseFailure, got %v", err)
	}
}

func BenchmarkLoadCacheHit(b *testing.B) {
	svc, _ := newService()
	src := infrastructure.NewUploadSource("reservations.csv", []byte(scenarioCSV))
	ctx := context.Background()
	_, _ = svc.Load(ctx, src)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Load(ctx, src)
	}
}

func TestLoadFailuresAreLogged(t *testing.T) {
	var out bytes.Buffer
	cache := sharedinfra.NewSlotCache()
	svc := NewLoadService(cache, sharedinfra.NewLoggerTo(&out), LoadOptions{})
	ctx := context.Background()

	bad := infrastructure.NewUploadSource("bad.csv", []byte("Arrival Date,Departure Date\n2024-01-01,2024-01-02\n"))
	if _, err := svc.Load(ctx, bad); err == nil {
		t.Fatal("Expected a missing columns error")
	}
	if !strings.Contains(out.String(), "[ERROR]") || !strings.Contains(out.String(), "bad.csv") {
		t.Errorf("Load failure should be logged at error level, got %q", out.String())
	}

	out.Reset()
	if _, err := svc.Load(ctx, nil); !errors.Is(err, domain.ErrNoSource) {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "[ERROR]") {
		t.Error("Awaiting upload is not an error")
	}

	result, err := svc.Load(ctx, infrastructure.NewUploadSource("reservations.csv", []byte(scenarioCSV)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Key, ":"+strconv.Itoa(len(scenarioCSV))+":") {
		t.Errorf("Key %s should carry the document size", result.Key)
	}

	out.Reset()
	svc.Refresh()
	if !strings.Contains(out.String(), result.Key) {
		t.Errorf("Refresh should log the evicted key, got %q", out.String())
	}
}
