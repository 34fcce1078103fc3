package grid

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Границы сетки: 9:00-17:00, шаг 30 минут
const (
	StartHour   = 9
	EndHour     = 17
	SlotMinutes = 30
	SlotsPerDay = (EndHour - StartHour) * 60 / SlotMinutes
	DaysPerWeek = 5
)

// CellKind что отображается в ячейке
type CellKind int

const (
	CellEmpty CellKind = iota
	CellLabel
	CellContinuation
)

// Label метка занятия в первой ячейке
type Label struct {
	LectureID int64
	Text      string
}

// Cell ячейка сетки (день x получасовой слот)
type Cell struct {
	Day   model.Weekday
	Time  model.ClockTime
	Label *Label

	// Highlighted фоновая подсветка ячейки-продолжения или перекрытия
	Highlighted bool

	// ColorOwner последнее занятие, дошедшее до ячейки (0 если пусто)
	ColorOwner int64
	Occupants  []int64
}

// Kind возвращает тип содержимого ячейки
func (c *Cell) Kind() CellKind {
	switch {
	case c.Label != nil:
		return CellLabel
	case len(c.Occupants) > 0:
		return CellContinuation
	default:
		return CellEmpty
	}
}

// IsEmpty ячейка ещё не занята
func (c *Cell) IsEmpty() bool {
	return len(c.Occupants) == 0
}

// Grid недельная сетка, индексируется [день][слот]
type Grid struct {
	cells [DaysPerWeek][SlotsPerDay]Cell
}

// New создаёт пустую сетку
func New() *Grid {
	g := &Grid{}
	for d, day := range model.Weekdays {
		for s := 0; s < SlotsPerDay; s++ {
			g.cells[d][s] = Cell{Day: day, Time: SlotTime(s)}
		}
	}
	return g
}

// SlotTime время начала слота по его индексу
func SlotTime(slot int) model.ClockTime {
	return model.FromMinutes(StartHour*60 + slot*SlotMinutes)
}

// SlotIndex индекс слота для времени; минуты округляются вниз до :00/:30.
// Возвращает false если время вне сетки.
func SlotIndex(t model.ClockTime) (int, bool) {
	if t.Hour < StartHour || t.Hour >= EndHour {
		return 0, false
	}
	minute := 0
	if t.Minute >= 30 {
		minute = 30
	}
	return ((t.Hour-StartHour)*60 + minute) / SlotMinutes, true
}

// Cell возвращает ячейку по индексам дня и слота
func (g *Grid) Cell(day, slot int) *Cell {
	if day < 0 || day >= DaysPerWeek || slot < 0 || slot >= SlotsPerDay {
		return nil
	}
	return &g.cells[day][slot]
}

// At возвращает ячейку по дню и времени
func (g *Grid) At(day model.Weekday, t model.ClockTime) *Cell {
	slot, ok := SlotIndex(t)
	if !ok {
		return nil
	}
	return g.Cell(day.Index(), slot)
}

// Rows возвращает строки сетки в порядке времени, в каждой строке 5 дней
func (g *Grid) Rows() [][]*Cell {
	rows := make([][]*Cell, SlotsPerDay)
	for s := 0; s < SlotsPerDay; s++ {
		row := make([]*Cell, DaysPerWeek)
		for d := 0; d < DaysPerWeek; d++ {
			row[d] = &g.cells[d][s]
		}
		rows[s] = row
	}
	return rows
}

// Labels все ячейки-метки в порядке времени (строка за строкой)
func (g *Grid) Labels() []*Cell {
	var labels []*Cell
	for _, row := range g.Rows() {
		for _, c := range row {
			if c.Label != nil {
				labels = append(labels, c)
			}
		}
	}
	return labels
}

// OccupiedCount количество занятых ячеек
func (g *Grid) OccupiedCount() int {
	n := 0
	for d := 0; d < DaysPerWeek; d++ {
		for s := 0; s < SlotsPerDay; s++ {
			if !g.cells[d][s].IsEmpty() {
				n++
			}
		}
	}
	return n
}
