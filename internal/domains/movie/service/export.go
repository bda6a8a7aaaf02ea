package service

import (
	"github.com/xuri/excelize/v2"

	"movielist-backend/internal/domains/movie/model"
)

const exportSheetName = "Movies"

var exportHeaders = []string{
	"Ranking",
	"Title",
	"Year",
	"Rating",
	"Review",
	"Description",
	"Poster URL",
	"Added At",
}

// buildMoviesExcelFile writes one row per movie, highest ranking first.
func buildMoviesExcelFile(movies []*model.Movie) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle)
	}

	// Movies arrive ascending by rating; the sheet reads best first.
	row := 2
	for i := len(movies) - 1; i >= 0; i-- {
		m := movies[i]
		values := []interface{}{
			m.Ranking,
			m.Title,
			m.Year,
			m.Rating,
			m.Review,
			m.Description,
			m.PosterURL(),
			m.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	_ = f.SetColWidth(exportSheetName, "B", "B", 40)
	_ = f.SetColWidth(exportSheetName, "E", "F", 60)

	return f, nil
}
