package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"innsight/internal/ingest/domain"
)

// FileSource lit le fichier de réservations sur le disque local
type FileSource struct {
	path string
}

// NewFileSource crée une source fichier
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name retourne le chemin du fichier
func (s *FileSource) Name() string {
	return s.path
}

// Fetch lit le fichier; un fichier absent renvoie ErrNoSource (en attente d'upload)
func (s *FileSource) Fetch(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoSource
	}
	if err != nil {
		return nil, domain.NewUnreadableFile(filepath.Base(s.path), err)
	}
	return domain.NewDocument(filepath.Base(s.path), data), nil
}

// DefaultDataPath retourne Reservations.xlsx à côté de l'exécutable
func DefaultDataPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "Reservations.xlsx"
	}
	return filepath.Join(filepath.Dir(exe), "Reservations.xlsx")
}

// UploadSource document reçu par upload, gardé en mémoire
type UploadSource struct {
	doc *domain.Document
}

// NewUploadSource crée une source à partir d'un fichier uploadé
func NewUploadSource(name string, data []byte) *UploadSource {
	return &UploadSource{doc: domain.NewDocument(name, data)}
}

// Name retourne le nom du fichier uploadé
func (s *UploadSource) Name() string {
	return fmt.Sprintf("upload:%s", s.doc.Name)
}

// Fetch retourne le document uploadé
func (s *UploadSource) Fetch(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.doc, nil
}
