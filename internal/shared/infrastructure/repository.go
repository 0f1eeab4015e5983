package infrastructure

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// QueryRepository interface de base pour les opérations de lecture
type QueryRepository interface {
	// Queryx exécute une requête de lecture et retourne les lignes
	Queryx(query string, args ...interface{}) (*sqlx.Rows, error)
}

// BaseRepository structure de base pour les repositories en lecture seule.
// Aucune écriture: la source de réservations n'est jamais modifiée.
type BaseRepository struct {
	db  *sqlx.DB
	ctx context.Context
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{
		db:  db,
		ctx: context.Background(),
	}
}

// WithContext retourne une copie du repository liée à ctx (annulation/timeout)
func (r BaseRepository) WithContext(ctx context.Context) BaseRepository {
	r.ctx = ctx
	return r
}

// Context retourne le contexte actuel
func (r *BaseRepository) Context() context.Context {
	return r.ctx
}

// DB retourne la connexion sous-jacente
func (r *BaseRepository) DB() *sqlx.DB {
	return r.db
}

// Queryx exécute une requête de lecture
func (r *BaseRepository) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	return r.db.QueryxContext(r.ctx, query, args...)
}

// QueryRowx exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRowx(query string, args ...interface{}) *sqlx.Row {
	return r.db.QueryRowxContext(r.ctx, query, args...)
}
