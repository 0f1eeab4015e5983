package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	analyticsapp "innsight/internal/analytics/application"
	analyticsdomain "innsight/internal/analytics/domain"
	"innsight/internal/export/domain"
	"innsight/internal/export/infrastructure"
	sharedinfra "innsight/internal/shared/infrastructure"
)

// ExportService exporte la vue filtrée courante (réservations ou KPIs)
type ExportService struct {
	dashboard *analyticsapp.DashboardService
	parquet   *infrastructure.ParquetWriter
	logger    *sharedinfra.Logger
	batchSize int
}

// NewExportService crée le service d'export au-dessus du tableau de bord
func NewExportService(dashboard *analyticsapp.DashboardService, logger *sharedinfra.Logger) *ExportService {
	if logger == nil {
		logger = sharedinfra.NopLogger()
	}
	return &ExportService{
		dashboard: dashboard,
		parquet:   infrastructure.NewParquetWriter(4),
		logger:    logger,
		batchSize: 1000,
	}
}

// Export produit le fichier demandé par job pour la requête de filtrage q
func (s *ExportService) Export(ctx context.Context, job *domain.ExportJob, q analyticsapp.Query) ([]byte, error) {
	start := time.Now()

	view, err := s.dashboard.View(ctx, q)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case job.ExportType() == domain.ExportTypeKPIs:
		data, err = s.kpisToCSV(view.KPIs)
	case job.Format() == domain.ExportFormatParquet:
		data, err = s.parquet.WriteReservations(exportRows(view.Filtered))
	default:
		data, err = s.reservationsToCSV(exportRows(view.Filtered))
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("export %s: %d rows, %d bytes in %v", job.FileName(), view.Filtered.Len(), len(data), time.Since(start))
	return data, nil
}

func exportRows(filtered *analyticsdomain.FilteredTable) []domain.ReservationExportRow {
	reservations := filtered.Reservations()
	rows := make([]domain.ReservationExportRow, len(reservations))
	for i, r := range reservations {
		rows[i] = domain.NewReservationExportRow(r)
	}
	return rows
}

// reservationsToCSV génère le CSV en mémoire, flush tous les batchSize lignes
func (s *ExportService) reservationsToCSV(rows []domain.ReservationExportRow) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 64*1024))
	writer := csv.NewWriter(buffer)

	if err := writer.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writer.Write(row.ToCSVRow()); err != nil {
			return nil, err
		}
		if (i+1)%s.batchSize == 0 {
			writer.Flush()
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// kpisToCSV une ligne par indicateur
func (s *ExportService) kpisToCSV(k analyticsdomain.KPISnapshot) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	records := [][]string{
		domain.KPIHeaders(),
		{"currency", k.TotalRevenue.Currency()},
		{"total_revenue", k.TotalRevenue.Decimal().StringFixed(2)},
		{"reservations", strconv.Itoa(k.Reservations)},
		{"avg_daily_rate", k.AvgDailyRate.Decimal().StringFixed(2)},
		{"avg_nights", domain.FormatRatio(k.AvgNights)},
		{"occupancy_ratio", domain.FormatRatio(k.OccupancyRatio)},
		{"revpar", k.RevPAR.Decimal().StringFixed(2)},
	}
	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
