package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classe les échecs de chargement. Tous sont terminaux pour la tentative en cours.
type ErrorKind string

const (
	KindUnreadableFile   ErrorKind = "unreadable_file"
	KindEmptyFile        ErrorKind = "empty_file"
	KindMissingColumns   ErrorKind = "missing_columns"
	KindDateParseFailure ErrorKind = "date_parse_failure"
)

// ErrNoSource signale qu'aucun fichier n'est disponible (en attente d'upload)
var ErrNoSource = errors.New("no reservation file available, waiting for upload")

// LoadError erreur typée remontée jusqu'à la frontière de présentation
type LoadError struct {
	Kind      ErrorKind
	Message   string
	Missing   []string
	Available []string
	Err       error
}

// Error implémente error
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap expose la cause
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewUnreadableFile construit une erreur de fichier illisible
func NewUnreadableFile(name string, err error) *LoadError {
	return &LoadError{
		Kind:    KindUnreadableFile,
		Message: "cannot read spreadsheet " + name,
		Err:     err,
	}
}

// NewEmptyFile construit une erreur de fichier sans lignes
func NewEmptyFile(name string) *LoadError {
	return &LoadError{
		Kind:    KindEmptyFile,
		Message: "spreadsheet " + name + " has no data rows",
	}
}

// NewMissingColumns construit une erreur listant les concepts introuvables
func NewMissingColumns(missing, available []string) *LoadError {
	return &LoadError{
		Kind: KindMissingColumns,
		Message: fmt.Sprintf("missing columns: %s. available columns: %s",
			strings.Join(missing, ", "), strings.Join(available, ", ")),
		Missing:   missing,
		Available: available,
	}
}

// NewDateParseFailure construit une erreur de conversion de date
func NewDateParseFailure(column string, row int, value string, err error) *LoadError {
	return &LoadError{
		Kind:    KindDateParseFailure,
		Message: fmt.Sprintf("cannot convert %q in column %q (row %d) to a date", value, column, row),
		Err:     err,
	}
}

// IsKind vérifie si err est une LoadError du type donné
func IsKind(err error, kind ErrorKind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == kind
}
