package render

import (
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/gocarina/gocsv"
)

// LectureCSVRow строка CSV выгрузки, поля совпадают с сохраняемым JSON
type LectureCSVRow struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Classroom string `csv:"classroom"`
	Day       string `csv:"day"`
	StartTime string `csv:"startTime"`
	EndTime   string `csv:"endTime"`
}

// CSV выгружает список занятий в порядке добавления
func CSV(lectures []*model.Lecture) ([]byte, error) {
	rows := make([]*LectureCSVRow, 0, len(lectures))
	for _, l := range lectures {
		rows = append(rows, &LectureCSVRow{
			ID:        l.ID,
			Name:      l.Name,
			Classroom: l.Classroom,
			Day:       string(l.Day),
			StartTime: l.StartTime,
			EndTime:   l.EndTime,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return []byte(out), nil
}

// ParseCSV читает выгрузку обратно в занятия
func ParseCSV(data []byte) ([]*model.Lecture, error) {
	var rows []*LectureCSVRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal csv: %w", err)
	}

	lectures := make([]*model.Lecture, 0, len(rows))
	for _, r := range rows {
		lectures = append(lectures, &model.Lecture{
			ID:        r.ID,
			Name:      r.Name,
			Classroom: r.Classroom,
			Day:       model.Weekday(r.Day),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return lectures, nil
}
