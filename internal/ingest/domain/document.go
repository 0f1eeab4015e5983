package domain

import (
	"context"
	"path"
	"strings"
)

// Format format de tableur reconnu
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// FormatFromName déduit le format de l'extension du nom (xlsx par défaut)
func FormatFromName(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".xls":
		return FormatXLS
	case ".csv", ".txt":
		return FormatCSV
	default:
		return FormatXLSX
	}
}

// Document contenu brut d'une source, avant lecture du tableur
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// NewDocument crée un document en déduisant son format du nom
func NewDocument(name string, data []byte) *Document {
	return &Document{
		Name:   name,
		Format: FormatFromName(name),
		Data:   data,
	}
}

// Source fournit le document de réservations courant
type Source interface {
	// Name identifie la source dans les logs et la clé de cache
	Name() string
	// Fetch lit le document; ErrNoSource si rien n'est disponible
	Fetch(ctx context.Context) (*Document, error)
}
