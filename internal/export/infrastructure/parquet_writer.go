package infrastructure

import (
	"bytes"
	"fmt"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"innsight/internal/export/domain"
)

// ParquetWriter sérialise les lignes d'export en Parquet (compression Snappy)
type ParquetWriter struct {
	parallelism int64
	rowGroup    int64
}

// NewParquetWriter crée un writer; parallelism = goroutines de marshalling
func NewParquetWriter(parallelism int64) *ParquetWriter {
	if parallelism <= 0 {
		parallelism = 4
	}
	return &ParquetWriter{
		parallelism: parallelism,
		rowGroup:    128 * 1024 * 1024,
	}
}

// WriteReservations écrit toutes les lignes en mémoire et retourne le fichier complet
func (w *ParquetWriter) WriteReservations(rows []domain.ReservationExportRow) ([]byte, error) {
	var buf bytes.Buffer
	fw := writerfile.NewWriterFile(&buf)

	pw, err := writer.NewParquetWriter(fw, new(domain.ReservationExportRow), w.parallelism)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.RowGroupSize = w.rowGroup
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(rows[i]); err != nil {
			return nil, fmt.Errorf("write parquet row %d: %w", i, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
