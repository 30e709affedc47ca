package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/peerrank/internal/models"
)

type LeaderboardWorkbook struct {
	File *excelize.File
}

// NewLeaderboardWorkbook — xlsx со сводом: позиция, ученик, сумма, среднее.
func NewLeaderboardWorkbook(rows []models.LeaderboardRow) (*LeaderboardWorkbook, error) {
	f := excelize.NewFile()
	sheet := "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []string{"Место", "Номер ученика", "ФИО", "Оценок", "Сумма", "Средний ранг"}
	for i, h := range header {
		cell := fmt.Sprintf("%s1", colName(i+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for i, row := range rows {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Position)
		_ = f.SetCellStr(sheet, fmt.Sprintf("B%d", r), row.StudentNumber)
		_ = f.SetCellStr(sheet, fmt.Sprintf("C%d", r), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.RatingsCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.TotalRating)
		_ = f.SetCellStr(sheet, fmt.Sprintf("F%d", r), strconv.FormatFloat(row.AverageRating, 'f', 2, 64))
	}

	// эвристическая ширина: по заголовку и ФИО
	for c := 1; c <= len(header); c++ {
		maxim := len([]rune(header[c-1]))
		if c == 3 {
			for r := 0; r < minim(50, len(rows)); r++ {
				if l := len([]rune(rows[r].Name)); l > maxim {
					maxim = l
				}
			}
		}
		w := float64(maxim) * 1.1
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), w)
	}

	return &LeaderboardWorkbook{File: f}, nil
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
