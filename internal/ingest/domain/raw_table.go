package domain

import "strings"

// RawTable tableau brut lu depuis un tableur: en-têtes d'origine + cellules texte
type RawTable struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Len retourne le nombre de lignes de données
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// Cell retourne la cellule (row, col) ou "" si la ligne est plus courte
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// NewRawTable construit un tableau à partir d'une grille (première ligne = en-têtes).
// Les lignes entièrement vides sont ignorées: les tableurs en traînent souvent en fin de feuille.
func NewRawTable(name string, grid [][]string) (*RawTable, error) {
	if len(grid) == 0 {
		return nil, NewEmptyFile(name)
	}

	table := &RawTable{
		Name:    name,
		Headers: grid[0],
		Rows:    make([][]string, 0, len(grid)-1),
	}
	for _, row := range grid[1:] {
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, NewEmptyFile(name)
	}
	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
