package infrastructure

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"innsight/internal/ingest/domain"
)

// maxXLSRows borne la lecture des classeurs .xls
const maxXLSRows = 1_000_000

// ReadTable lit la première feuille du document en tableau brut.
// Toute erreur de lecture devient UnreadableFile, une feuille sans lignes EmptyFile.
func ReadTable(doc *domain.Document) (*domain.RawTable, error) {
	if doc == nil || len(doc.Data) == 0 {
		name := ""
		if doc != nil {
			name = doc.Name
		}
		return nil, domain.NewEmptyFile(name)
	}

	var (
		grid [][]string
		err  error
	)
	switch doc.Format {
	case domain.FormatXLS:
		grid, err = readXLS(doc.Data)
	case domain.FormatCSV:
		grid, err = readCSV(doc.Data)
	default:
		grid, err = readXLSX(doc.Data)
	}
	if err != nil {
		return nil, domain.NewUnreadableFile(doc.Name, err)
	}

	return domain.NewRawTable(doc.Name, grid)
}

// readXLSX lit la première feuille en valeurs brutes: les dates restent des numéros de série
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("no worksheet found")
	}

	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no worksheet found")
	}
	// ReadAllCells concatène toutes les feuilles
	if wb.NumSheets() > 1 {
		return nil, fmt.Errorf("workbook has %d worksheets, expected a single sheet", wb.NumSheets())
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

// readCSV accepte "," ou ";" comme séparateur (exports Excel en locale pt-BR)
func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = detectDelimiter(data)

	grid, err := r.ReadAll()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return grid, nil
}

func detectDelimiter(data []byte) rune {
	firstLine := string(data)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';'
	}
	return ','
}
