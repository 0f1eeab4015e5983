package infrastructure

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jmoiron/sqlx"

	"innsight/internal/ingest/domain"
	reservationsinfra "innsight/internal/reservations/infrastructure"
)

// GridFetcher lit une grille de texte depuis une base
type GridFetcher interface {
	FetchGrid(ctx context.Context, query string) ([][]string, error)
}

// PostgresSource source en lecture seule: exécute une requête et rend le résultat en CSV
type PostgresSource struct {
	repo  GridFetcher
	query string
}

// NewPostgresSource crée une source PostgreSQL; query vide = requête par défaut
func NewPostgresSource(db *sqlx.DB, query string) *PostgresSource {
	return NewPostgresSourceWithFetcher(reservationsinfra.NewReservationQueryRepository(db), query)
}

// NewPostgresSourceWithFetcher crée une source avec un fetcher fourni
func NewPostgresSourceWithFetcher(repo GridFetcher, query string) *PostgresSource {
	if query == "" {
		query = reservationsinfra.DefaultReservationsQuery
	}
	return &PostgresSource{repo: repo, query: query}
}

// Name identifie la source
func (s *PostgresSource) Name() string {
	return "postgres:reservations"
}

// Fetch exécute la requête et encode la grille en document CSV
func (s *PostgresSource) Fetch(ctx context.Context) (*domain.Document, error) {
	grid, err := s.repo.FetchGrid(ctx, s.query)
	if err != nil {
		return nil, domain.NewUnreadableFile(s.Name(), err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(grid); err != nil {
		return nil, domain.NewUnreadableFile(s.Name(), fmt.Errorf("encode csv: %w", err))
	}

	return &domain.Document{
		Name:   "reservations.csv",
		Format: domain.FormatCSV,
		Data:   buf.Bytes(),
	}, nil
}
