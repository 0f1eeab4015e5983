package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	reservationsdomain "innsight/internal/reservations/domain"
	"innsight/internal/shared/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

// ExportType représente le contenu exporté
type ExportType string

const (
	ExportTypeReservations ExportType = "reservations"
	ExportTypeKPIs         ExportType = "kpis"
)

var (
	ErrInvalidFormat      = errors.New("invalid export format")
	ErrInvalidType        = errors.New("invalid export type")
	ErrUnsupportedPairing = errors.New("kpis export is only available as csv")
)

// ExportJob représente une demande d'export validée
type ExportJob struct {
	format     ExportFormat
	exportType ExportType
	createdAt  time.Time
}

// NewExportJob crée un job d'export avec validation.
// Les KPIs ne sont exportés qu'en CSV (six lignes, pas de schéma colonnaire).
func NewExportJob(format ExportFormat, exportType ExportType) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, ErrInvalidFormat
	}
	if exportType != ExportTypeReservations && exportType != ExportTypeKPIs {
		return nil, ErrInvalidType
	}
	if exportType == ExportTypeKPIs && format != ExportFormatCSV {
		return nil, ErrUnsupportedPairing
	}

	return &ExportJob{
		format:     format,
		exportType: exportType,
		createdAt:  time.Now(),
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le type d'export
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// FileName nom de fichier proposé au téléchargement
func (ej *ExportJob) FileName() string {
	return string(ej.exportType) + "." + string(ej.format)
}

// ContentType type MIME de la réponse
func (ej *ExportJob) ContentType() string {
	if ej.format == ExportFormatParquet {
		return "application/octet-stream"
	}
	return "text/csv"
}

// ReservationExportRow ligne d'export d'une réservation filtrée.
// Les tags parquet décrivent le schéma colonnaire.
type ReservationExportRow struct {
	ArrivalDate   string  `parquet:"name=arrival_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	DepartureDate string  `parquet:"name=departure_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	DailyRate     float64 `parquet:"name=daily_rate, type=DOUBLE"`
	RoomType      string  `parquet:"name=room_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Guests        int32   `parquet:"name=guests, type=INT32"`
	Room          string  `parquet:"name=room, type=BYTE_ARRAY, convertedtype=UTF8"`
	Nights        int32   `parquet:"name=nights, type=INT32"`
	Revenue       float64 `parquet:"name=revenue, type=DOUBLE"`
	Month         string  `parquet:"name=month, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weekday       string  `parquet:"name=weekday, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// NewReservationExportRow aplatit une réservation pour l'export
func NewReservationExportRow(r *reservationsdomain.Reservation) ReservationExportRow {
	return ReservationExportRow{
		ArrivalDate:   r.Arrival().Format(domain.DateLayout),
		DepartureDate: r.Departure().Format(domain.DateLayout),
		DailyRate:     r.DailyRate().Amount(),
		RoomType:      r.RoomType(),
		Guests:        int32(r.Guests()),
		Room:          string(r.Room()),
		Nights:        int32(r.Nights()),
		Revenue:       r.Revenue().Amount(),
		Month:         r.Month(),
		Weekday:       r.WeekdayName(),
	}
}

// ToCSVRow convertit en tableau pour CSV (strconv plutôt que fmt.Sprintf)
func (row ReservationExportRow) ToCSVRow() []string {
	return []string{
		row.ArrivalDate,
		row.DepartureDate,
		strconv.FormatFloat(row.DailyRate, 'f', 2, 64),
		row.RoomType,
		strconv.Itoa(int(row.Guests)),
		row.Room,
		strconv.Itoa(int(row.Nights)),
		strconv.FormatFloat(row.Revenue, 'f', 2, 64),
		row.Month,
		row.Weekday,
	}
}

// CSVHeaders retourne les en-têtes CSV de l'export des réservations
func CSVHeaders() []string {
	return []string{
		"arrival_date",
		"departure_date",
		"daily_rate",
		"room_type",
		"guests",
		"room",
		"nights",
		"revenue",
		"month",
		"weekday",
	}
}

// KPIHeaders en-têtes de l'export des indicateurs
func KPIHeaders() []string {
	return []string{"metric", "value"}
}

// FormatRatio ratio à quatre décimales, sans zéros de queue
func FormatRatio(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
