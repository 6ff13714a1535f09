package serviceImp

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Uvais-khan078/village360/pkg/gap/service"
)

const (
	VillagesSheet = "Villages"
	SummarySheet  = "Summary"
)

var (
	villageHeader = []string{"Village", "District", "Block", "Amenity", "Available", "Required", "Gap", "Coverage %", "Severity"}
	summaryHeader = []string{"Amenity", "Available", "Required", "Gap", "Coverage %", "Severity"}
)

func (s *gapSvc) Export(ctx context.Context, f service.Filter) ([]byte, error) {
	a, err := s.Analyze(ctx, f)
	if err != nil {
		return nil, err
	}
	return Workbook(a)
}

// Workbook writes one row per village amenity and one per summary type.
func Workbook(a *service.Analysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", VillagesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	rows := [][]any{}
	for _, v := range a.Villages {
		for _, g := range v.Amenities {
			rows = append(rows, []any{v.Name, v.District, v.Block, g.AmenityType, g.Available, g.Required, g.Gap, g.Coverage, string(g.Severity)})
		}
	}
	if err := writeSheet(f, VillagesSheet, villageHeader, rows, header); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, g := range a.Summary {
		rows = append(rows, []any{g.AmenityType, g.Available, g.Required, g.Gap, g.Coverage, string(g.Severity)})
	}
	if err := writeSheet(f, SummarySheet, summaryHeader, rows, header); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, style int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
