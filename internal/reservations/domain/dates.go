package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// maxExcelSerial correspond au 31/12/9999, dernière date représentable par Excel
const maxExcelSerial = 2958465

// isoLayouts formats sans ambiguïté jour/mois.
// "1" et "2" acceptent un ou deux chiffres: 2006-1-2 couvre aussi 2006-01-02.
var isoLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	"2006-1-2T15:04",
	time.RFC3339,
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate convertit une cellule en date calendaire.
// Formats acceptés: ISO avec ou sans zéros (date, heure à la minute ou à la seconde),
// 2006/01/02, 05-Jan-2024, Jan 5, 2024, M/J/AAAA (J/M/AAAA si dayFirst) avec heure optionnelle
// et numéro de série Excel (cellules lues en valeur brute).
func ParseDate(value string, dayFirst bool) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	slashed := "1/2/2006"
	if dayFirst {
		slashed = "2/1/2006"
	}
	if t, err := time.Parse(slashed, v); err == nil {
		return t, nil
	}
	for _, clock := range []string{" 15:04:05", " 15:04"} {
		if t, err := time.Parse(slashed+clock, v); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial < 1 || serial > maxExcelSerial {
			return time.Time{}, fmt.Errorf("excel serial %q out of range", v)
		}
		return excelize.ExcelDateToTime(serial, false)
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", v)
}
