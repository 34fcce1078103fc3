package grid

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Build раскладывает занятия по сетке.
// Занятия обрабатываются в порядке добавления: первое занятие, попавшее в пустую
// ячейку, ставит туда свою метку, остальные только подсвечивают ячейку.
// Неизвестный день, нераспознанное время и слоты вне 9:00-17:00 молча пропускаются.
func Build(lectures []*model.Lecture) *Grid {
	g := New()
	for _, lecture := range lectures {
		place(g, lecture)
	}
	return g
}

func place(g *Grid, lecture *model.Lecture) {
	day := lecture.Day.Index()
	if day < 0 {
		return
	}

	labeled := false
	for _, t := range CoveredSlots(lecture) {
		slot, ok := SlotIndex(t)
		if !ok {
			continue
		}
		cell := g.Cell(day, slot)

		if cell.IsEmpty() && !labeled {
			cell.Label = &Label{LectureID: lecture.ID, Text: lecture.Label()}
			labeled = true
		} else {
			cell.Highlighted = true
		}

		cell.ColorOwner = lecture.ID
		cell.Occupants = append(cell.Occupants, lecture.ID)
	}
}

// CoveredSlots шаги по 30 минут от начала (включительно) до конца (не включительно).
// Пустой результат если время не разбирается или начало не раньше конца.
func CoveredSlots(lecture *model.Lecture) []model.ClockTime {
	start, err := model.ParseClock(lecture.StartTime)
	if err != nil {
		return nil
	}
	end, err := model.ParseClock(lecture.EndTime)
	if err != nil {
		return nil
	}

	var slots []model.ClockTime
	for m := start.Minutes(); m < end.Minutes(); m += SlotMinutes {
		slots = append(slots, model.FromMinutes(m))
	}
	return slots
}
