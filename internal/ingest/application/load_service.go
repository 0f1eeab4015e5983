package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"innsight/internal/ingest/domain"
	"innsight/internal/ingest/infrastructure"
	reservationsdomain "innsight/internal/reservations/domain"
	sharedinfra "innsight/internal/shared/infrastructure"
)

// LoadResult résultat d'un chargement
type LoadResult struct {
	Table    *reservationsdomain.CanonicalTable
	Report   reservationsdomain.DeriveReport
	CacheHit bool
	Key      string
	LoadedAt time.Time
}

// cachedLoad valeur stockée dans le cache
type cachedLoad struct {
	table  *reservationsdomain.CanonicalTable
	report reservationsdomain.DeriveReport
}

// LoadOptions paramètres du pipeline de chargement
type LoadOptions struct {
	Aliases  *domain.AliasSet
	DayFirst bool
	Currency string
	CacheTTL time.Duration
}

// LoadService pipeline lecture → normalisation → dérivation, derrière un cache à emplacement unique
type LoadService struct {
	normalizer *domain.Normalizer
	cache      sharedinfra.Cache
	logger     *sharedinfra.Logger
	opts       LoadOptions
}

// NewLoadService crée une nouvelle instance de LoadService
func NewLoadService(cache sharedinfra.Cache, logger *sharedinfra.Logger, opts LoadOptions) *LoadService {
	if logger == nil {
		logger = sharedinfra.NopLogger()
	}
	if opts.Currency == "" {
		opts.Currency = reservationsdomain.DefaultCurrency
	}
	return &LoadService{
		normalizer: domain.NewNormalizer(opts.Aliases),
		cache:      cache,
		logger:     logger,
		opts:       opts,
	}
}

// Load retourne le tableau canonique de la source.
// La clé de cache combine le nom de la source et l'empreinte SHA-256 du contenu:
// un fichier modifié sous le même nom est rechargé.
func (s *LoadService) Load(ctx context.Context, source domain.Source) (*LoadResult, error) {
	if source == nil {
		return nil, domain.ErrNoSource
	}

	doc, err := source.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSource) {
			s.logger.Error("cannot fetch %s: %v", source.Name(), err)
		}
		return nil, err
	}

	key := s.cacheKey(source, doc)
	if cached, found := s.entry(key); found {
		s.logger.Debug("cache hit for %s", source.Name())
		return cached, nil
	}

	start := time.Now()
	raw, err := infrastructure.ReadTable(doc)
	if err != nil {
		s.logger.Error("cannot read %s: %v", doc.Name, err)
		return nil, err
	}

	normalized, err := s.normalizer.Normalize(raw)
	if err != nil {
		s.logger.Error("cannot normalize %s: %v", doc.Name, err)
		return nil, err
	}

	table, report, err := reservationsdomain.Derive(normalized, reservationsdomain.DeriveOptions{
		DayFirst: s.opts.DayFirst,
		Currency: s.opts.Currency,
	})
	if err != nil {
		s.logger.Error("cannot derive metrics for %s: %v", doc.Name, err)
		return nil, err
	}

	s.cache.Set(key, &cachedLoad{table: table, report: report}, s.opts.CacheTTL)
	s.logger.Info("loaded %s: %d/%d reservations kept in %v (load %s)",
		doc.Name, report.Kept, report.InputRows, time.Since(start), table.ID())
	for _, w := range report.Warnings() {
		s.logger.Warn("%s", w)
	}

	return &LoadResult{
		Table:    table,
		Report:   report,
		CacheHit: false,
		Key:      key,
		LoadedAt: table.LoadedAt(),
	}, nil
}

// Refresh invalide entièrement le cache (action de rafraîchissement manuel)
func (s *LoadService) Refresh() {
	previous := s.cache.CurrentKey()
	s.cache.Clear()
	if previous != "" {
		s.logger.Info("load cache cleared (%s)", previous)
	}
}

func (s *LoadService) entry(key string) (*LoadResult, bool) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	cached, ok := value.(*cachedLoad)
	if !ok {
		return nil, false
	}
	return &LoadResult{
		Table:    cached.table,
		Report:   cached.report,
		CacheHit: true,
		Key:      key,
		LoadedAt: cached.table.LoadedAt(),
	}, true
}

func (s *LoadService) cacheKey(source domain.Source, doc *domain.Document) string {
	sum := sha256.Sum256(doc.Data)
	return sharedinfra.NewCacheKeyBuilder().
		Add("load").
		Add(source.Name()).
		Add(string(doc.Format)).
		AddInt(len(doc.Data)).
		Add(hex.EncodeToString(sum[:])).
		Build()
}
