// Package importer reads canopy configurations from the first sheet of an
// XLSX workbook, one canopy per row after the header:
//
//	span, rise, column_spacing, truss_spacing, region[, roof_angle, column_height]
package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Canopy/internal/calc/canopy"
	"Canopy/internal/calc/loads"
)

const minColumns = 5

// Row is one parsed configuration and its 1-based sheet row.
type Row struct {
	Row    int
	Config canopy.Config
}

// RowError describes a rejected row.
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]Row, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses every data row. Blank rows are skipped; malformed rows are
// reported and do not stop the import.
func Read(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var out []Row
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		cfg, err := parseRow(rows[i])
		if err != nil {
			bad = append(bad, RowError{Row: i + 1, Err: err.Error()})
			continue
		}
		out = append(out, Row{Row: i + 1, Config: cfg})
	}
	return out, bad, nil
}

// Configs strips the row numbers.
func Configs(rows []Row) []canopy.Config {
	out := make([]canopy.Config, len(rows))
	for i, r := range rows {
		out[i] = r.Config
	}
	return out
}

func parseRow(row []string) (canopy.Config, error) {
	if len(row) < minColumns {
		return canopy.Config{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}
	var cfg canopy.Config
	var err error
	for i, dst := range []*float64{&cfg.Span, &cfg.Rise, &cfg.ColumnSpacing, &cfg.TrussSpacing} {
		if *dst, err = toFloat(row[i]); err != nil {
			return canopy.Config{}, fmt.Errorf("column %d: %w", i+1, err)
		}
	}
	if cfg.Region, err = loads.ParseRegion(strings.ToUpper(strings.TrimSpace(row[4]))); err != nil {
		return canopy.Config{}, err
	}
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		angle, err := toFloat(row[5])
		if err != nil {
			return canopy.Config{}, fmt.Errorf("roof angle: %w", err)
		}
		cfg.RoofAngle = &angle
	}
	if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
		if cfg.ColumnHeight, err = toFloat(row[6]); err != nil {
			return canopy.Config{}, fmt.Errorf("column height: %w", err)
		}
	}
	return cfg, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
