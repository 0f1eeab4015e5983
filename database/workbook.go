package database

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Reservas"

// WriteWorkbook écrit les réservations dans un classeur .xlsx (une feuille).
// Les dates sont des cellules date Excel, comme dans un export de PMS.
func WriteWorkbook(w io.Writer, reservations []Reservation, headers []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range reservations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ArrivalDate, r.DepartureDate, r.DailyRate, r.RoomType, r.Guests, r.Room}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
