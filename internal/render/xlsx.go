package render

import (
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	TimetableSheet = "시간표"
	LecturesSheet  = "강의 목록"
)

// XLSX строит книгу с двумя листами: сетка и список занятий
func XLSX(g *grid.Grid, lectures []*model.Lecture) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TimetableSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeGridSheet(f, g); err != nil {
		return nil, err
	}
	if err := writeLecturesSheet(f, lectures); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeGridSheet(f *excelize.File, g *grid.Grid) error {
	labelStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"85C155"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create label style: %w", err)
	}
	continuationStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F0A8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create continuation style: %w", err)
	}

	for i, day := range model.Weekdays {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := f.SetCellValue(TimetableSheet, cell, string(day)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for s, row := range g.Rows() {
		rowNum := s + 2
		timeCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellValue(TimetableSheet, timeCell, grid.SlotTime(s).String()); err != nil {
			return fmt.Errorf("write time label: %w", err)
		}

		for d, c := range row {
			name, _ := excelize.CoordinatesToCellName(d+2, rowNum)
			switch c.Kind() {
			case grid.CellLabel:
				if err := f.SetCellValue(TimetableSheet, name, c.Label.Text); err != nil {
					return fmt.Errorf("write label: %w", err)
				}
				style := labelStyle
				if c.Highlighted {
					style = continuationStyle
				}
				if err := f.SetCellStyle(TimetableSheet, name, name, style); err != nil {
					return fmt.Errorf("style label: %w", err)
				}
			case grid.CellContinuation:
				if err := f.SetCellStyle(TimetableSheet, name, name, continuationStyle); err != nil {
					return fmt.Errorf("style continuation: %w", err)
				}
			}
		}
	}

	return f.SetColWidth(TimetableSheet, "B", "F", 22)
}

func writeLecturesSheet(f *excelize.File, lectures []*model.Lecture) error {
	if _, err := f.NewSheet(LecturesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{"ID", "강의명", "강의실", "요일", "시작", "종료"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(LecturesSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, l := range lectures {
		row := i + 2
		values := []interface{}{l.ID, l.Name, l.Classroom, string(l.Day), l.StartTime, l.EndTime}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(LecturesSheet, cell, v); err != nil {
				return fmt.Errorf("write lecture %d: %w", l.ID, err)
			}
		}
	}

	return nil
}
