package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"Canopy/internal/calc/canopy"
)

// Workbook sheet names.
const (
	SheetSpecification = "Specification"
	SheetMembers       = "Members"
)

// WriteXLSX writes the bill of materials and the member table as a workbook.
func WriteXLSX(w io.Writer, res *canopy.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSpecification); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetMembers); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	spec := [][]interface{}{{"Pos", "Name", "Profile", "Length, mm", "Qty", "Total L, m", "Mass, kg"}}
	for i, it := range res.Specification {
		spec = append(spec, []interface{}{i + 1, it.Label, it.Profile, round(it.LengthMM, 0), it.Count, it.TotalM, it.MassKg})
	}
	spec = append(spec, []interface{}{"", "Total", "", "", "", "", res.TotalMassKg})
	if err := writeRows(f, SheetSpecification, spec, bold); err != nil {
		return err
	}

	members := [][]interface{}{{"ID", "Category", "Start", "End", "Length, mm", "Force, kN", "Profile", "Required A, cm2", "Required I, cm4", "Weld, mm", "Fallback"}}
	for _, m := range res.Members {
		members = append(members, []interface{}{
			int(m.ID), string(m.Category), int(m.Start), int(m.End),
			round(m.Length, 1), round(m.ForceKN, 3), m.Profile.Name,
			round(m.RequiredArea, 3), round(m.RequiredInertia, 3), m.Weld.SizeMM, m.Fallback,
		})
	}
	if err := writeRows(f, SheetMembers, members, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, header int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetRowStyle(sheet, 1, 1, header)
}
