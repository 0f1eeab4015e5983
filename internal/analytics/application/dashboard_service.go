package application

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"innsight/internal/analytics/domain"
	ingestapp "innsight/internal/ingest/application"
	ingestdomain "innsight/internal/ingest/domain"
	ingestinfra "innsight/internal/ingest/infrastructure"
	shareddomain "innsight/internal/shared/domain"
	sharedinfra "innsight/internal/shared/infrastructure"
)

// Query paramètres de filtrage reçus de la présentation.
// Range nil = toute la plage d'arrivées du tableau canonique.
type Query struct {
	Range     *shareddomain.DateRange
	RoomTypes domain.Selection[string]
	Guests    domain.Selection[int]
}

// DefaultQuery aucune restriction
func DefaultQuery() Query {
	return Query{
		RoomTypes: domain.All[string](),
		Guests:    domain.All[int](),
	}
}

// KPIView indicateurs sérialisables
type KPIView struct {
	Currency       string  `json:"currency"`
	TotalRevenue   float64 `json:"totalRevenue"`
	Reservations   int     `json:"reservations"`
	AvgDailyRate   float64 `json:"avgDailyRate"`
	AvgNights      float64 `json:"avgNights"`
	OccupancyRatio float64 `json:"occupancyRatio"`
	RevPAR         float64 `json:"revpar"`
}

// InsightView constat optionnel sérialisable
type InsightView struct {
	Present bool    `json:"present"`
	Key     string  `json:"key,omitempty"`
	Value   float64 `json:"value,omitempty"`
}

// InsightsView constats + phrases prêtes à afficher
type InsightsView struct {
	BestPerformer InsightView `json:"bestPerformer"`
	Opportunity   InsightView `json:"opportunity"`
	BestSeason    InsightView `json:"bestSeason"`
	MeanGuests    *float64    `json:"meanGuests,omitempty"`
	Messages      []string    `json:"messages"`
}

// FilterOptions valeurs proposées par les widgets de filtre, sentinel "all" en tête
type FilterOptions struct {
	RoomTypes []string `json:"roomTypes"`
	Guests    []string `json:"guests"`
	MinDate   string   `json:"minDate,omitempty"`
	MaxDate   string   `json:"maxDate,omitempty"`

	// Selected sélection appliquée, dans le même vocabulaire que les options
	Selected SelectedFilters `json:"selected"`
}

// SelectedFilters ["all"] = aucune restriction, [] = sélection vide explicite
type SelectedFilters struct {
	RoomTypes []string `json:"roomTypes"`
	Guests    []string `json:"guests"`
}

// Dashboard modèle de vue complet du tableau de bord
type Dashboard struct {
	LoadID    string                `json:"loadId"`
	Source    string                `json:"source"`
	LoadedAt  time.Time             `json:"loadedAt"`
	CacheHit  bool                  `json:"cacheHit"`
	KPIs      KPIView               `json:"kpis"`
	Charts    domain.Charts         `json:"charts"`
	Insights  InsightsView          `json:"insights"`
	Scorecard []domain.ScorecardRow `json:"scorecard"`
	Filters   FilterOptions         `json:"filters"`
	Warnings  []string              `json:"warnings"`
	Footer    domain.Footer         `json:"footer"`
}

// View vue filtrée et résultat de chargement associé
type View struct {
	Load     *ingestapp.LoadResult
	Filtered *domain.FilteredTable
	KPIs     domain.KPISnapshot
}

// DashboardService orchestre chargement, filtrage et agrégations pour une interaction
type DashboardService struct {
	loader *ingestapp.LoadService
	logger *sharedinfra.Logger

	mu     sync.RWMutex
	source ingestdomain.Source
}

// NewDashboardService crée le service; source peut être nil (en attente d'upload)
func NewDashboardService(loader *ingestapp.LoadService, source ingestdomain.Source, logger *sharedinfra.Logger) *DashboardService {
	if logger == nil {
		logger = sharedinfra.NopLogger()
	}
	return &DashboardService{
		loader: loader,
		logger: logger,
		source: source,
	}
}

// Source retourne la source courante
func (s *DashboardService) Source() ingestdomain.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// View charge (ou reprend du cache) le tableau canonique et applique les filtres
func (s *DashboardService) View(ctx context.Context, q Query) (*View, error) {
	result, err := s.loader.Load(ctx, s.Source())
	if err != nil {
		return nil, err
	}

	params := domain.DefaultParams(result.Table)
	if q.Range != nil {
		params.Range = *q.Range
	}
	params.RoomTypes = q.RoomTypes
	params.Guests = q.Guests

	filtered := domain.Apply(result.Table, params)
	return &View{
		Load:     result,
		Filtered: filtered,
		KPIs:     domain.ComputeKPIs(filtered),
	}, nil
}

// Dashboard construit le modèle de vue complet pour la requête
func (s *DashboardService) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	start := time.Now()

	view, err := s.View(ctx, q)
	if err != nil {
		return nil, err
	}

	table := view.Load.Table
	insights := domain.DeriveInsights(view.Filtered)

	dashboard := &Dashboard{
		LoadID:    table.ID().String(),
		Source:    table.Source(),
		LoadedAt:  table.LoadedAt(),
		CacheHit:  view.Load.CacheHit,
		KPIs:      toKPIView(view.KPIs),
		Charts:    domain.BuildCharts(view.Filtered),
		Insights:  toInsightsView(insights),
		Scorecard: domain.BuildScorecard(view.KPIs),
		Filters:   filterOptions(view),
		Warnings:  view.Load.Report.Warnings(),
		Footer:    domain.BuildFooter(view.Filtered),
	}

	s.logger.Debug("dashboard built in %v (%d/%d reservations)", time.Since(start), view.Filtered.Len(), table.Len())
	return dashboard, nil
}

// Upload remplace la source courante par un fichier uploadé.
// La source n'est remplacée que si le fichier se charge sans erreur.
func (s *DashboardService) Upload(ctx context.Context, name string, data []byte) (*ingestapp.LoadResult, error) {
	src := ingestinfra.NewUploadSource(name, data)

	result, err := s.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	s.mu.Lock()
	s.source = src
	s.mu.Unlock()

	s.logger.Info("source switched to %s", src.Name())
	return result, nil
}

// Refresh invalide le cache de chargement
func (s *DashboardService) Refresh() {
	s.loader.Refresh()
}

func toKPIView(k domain.KPISnapshot) KPIView {
	return KPIView{
		Currency:       k.TotalRevenue.Currency(),
		TotalRevenue:   k.TotalRevenue.Amount(),
		Reservations:   k.Reservations,
		AvgDailyRate:   k.AvgDailyRate.Amount(),
		AvgNights:      k.AvgNights,
		OccupancyRatio: k.OccupancyRatio,
		RevPAR:         k.RevPAR.Amount(),
	}
}

func toInsightsView(i domain.Insights) InsightsView {
	view := InsightsView{
		BestPerformer: toInsightView(i.BestPerformer),
		Opportunity:   toInsightView(i.Opportunity),
		BestSeason:    toInsightView(i.BestSeason),
		Messages:      i.Messages(),
	}
	if i.GuestProfile.Present {
		mean := i.GuestProfile.MeanGuests
		view.MeanGuests = &mean
	}
	return view
}

func toInsightView(i domain.Insight) InsightView {
	if !i.Present {
		return InsightView{}
	}
	return InsightView{Present: true, Key: i.Key, Value: i.Value.Amount()}
}

// filterOptions énumère les valeurs du tableau canonique (pas de la vue filtrée)
func filterOptions(view *View) FilterOptions {
	table := view.Load.Table

	opts := FilterOptions{
		RoomTypes: append([]string{domain.AllSentinel}, table.RoomTypes()...),
		Guests:    []string{domain.AllSentinel},
	}
	for _, g := range table.GuestCounts() {
		opts.Guests = append(opts.Guests, strconv.Itoa(g))
	}
	if rng, ok := table.ArrivalRange(); ok {
		opts.MinDate = rng.Start().Format(shareddomain.DateLayout)
		opts.MaxDate = rng.End().Format(shareddomain.DateLayout)
	}

	params := view.Filtered.Params()
	opts.Selected.RoomTypes = []string{domain.AllSentinel}
	if !params.RoomTypes.IsAll() {
		opts.Selected.RoomTypes = params.RoomTypes.Values()
		sort.Strings(opts.Selected.RoomTypes)
	}
	opts.Selected.Guests = []string{domain.AllSentinel}
	if !params.Guests.IsAll() {
		guests := params.Guests.Values()
		sort.Ints(guests)
		opts.Selected.Guests = make([]string, len(guests))
		for i, g := range guests {
			opts.Selected.Guests[i] = strconv.Itoa(g)
		}
	}
	return opts
}
