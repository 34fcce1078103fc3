package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday день недели в сетке расписания (только будни)
type Weekday string

const (
	Monday    Weekday = "월"
	Tuesday   Weekday = "화"
	Wednesday Weekday = "수"
	Thursday  Weekday = "목"
	Friday    Weekday = "금"
)

// Weekdays фиксированный порядок колонок сетки
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Index возвращает номер колонки дня или -1 для неизвестного значения
func (d Weekday) Index() int {
	for i, wd := range Weekdays {
		if wd == d {
			return i
		}
	}
	return -1
}

// IsValid проверяет что день входит в сетку
func (d Weekday) IsValid() bool {
	return d.Index() >= 0
}

// Lecture одна запись расписания
type Lecture struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Classroom string  `json:"classroom"`
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"` // "HH:MM"
	EndTime   string  `json:"endTime"`   // "HH:MM"
}

// Label текст для ячейки-метки: "Название / Аудитория"
func (l *Lecture) Label() string {
	if l.Classroom == "" {
		return l.Name
	}
	return l.Name + " / " + l.Classroom
}

// ClockTime время суток без даты
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock разбирает строку "HH:MM" (допускается "9:00")
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// FromMinutes строит время из количества минут от полуночи
func FromMinutes(m int) ClockTime {
	return ClockTime{Hour: m / 60, Minute: m % 60}
}

// Minutes количество минут от полуночи
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
