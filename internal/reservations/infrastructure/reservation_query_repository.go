package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	shareddomain "innsight/internal/shared/domain"
	"innsight/internal/shared/infrastructure"
)

// DefaultReservationsQuery lit la table créée par cmd/seed -pg
const DefaultReservationsQuery = `
	SELECT arrival_date AS "Arrival Date",
	       departure_date AS "Departure Date",
	       daily_rate AS "Daily Rate",
	       room_type AS "Room Type",
	       guests AS "No Of Guests",
	       room AS "Room"
	FROM reservations
	ORDER BY arrival_date, id
`

// ReservationQueryRepository repository en lecture seule sur une base de réservations.
// Le résultat est rendu en grille de texte pour passer par la même normalisation qu'un tableur.
type ReservationQueryRepository struct {
	infrastructure.BaseRepository
}

// NewReservationQueryRepository crée un nouveau repository de lecture pour les réservations
func NewReservationQueryRepository(db *sqlx.DB) *ReservationQueryRepository {
	return &ReservationQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FetchGrid exécute une requête SELECT et retourne en-têtes + lignes sous forme de texte
func (r *ReservationQueryRepository) FetchGrid(ctx context.Context, query string) ([][]string, error) {
	if !isReadOnly(query) {
		return nil, errors.New("reservations query must be a SELECT statement")
	}

	repo := r.WithContext(ctx)
	rows, err := repo.Queryx(query)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	grid := [][]string{columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = formatCell(v)
		}
		grid = append(grid, cells)
	}

	return grid, rows.Err()
}

// isReadOnly accepte SELECT et WITH, rien d'autre
func isReadOnly(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(q, "SELECT") || strings.HasPrefix(q, "WITH")
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(shareddomain.DateLayout)
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
