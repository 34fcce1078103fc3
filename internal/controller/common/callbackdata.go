package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// ========================
// Callback Data Patterns
// ========================

const (
	DeleteLecture = "del:" // del:lecture_id

	ShowList      = "show_list"
	ShowTimetable = "show_timetable"

	AddSkipRoom = "add_skip_room:" // add_skip_room:draft
	AddDay      = "add_day:"       // add_day:draft:day_index
	AddStart    = "add_start:"     // add_start:draft:HHMM
	AddEnd      = "add_end:"       // add_end:draft:HHMM
)

// DeleteData callback data кнопки удаления
func DeleteData(id int64) string {
	return DeleteLecture + strconv.FormatInt(id, 10)
}

// DraftData callback data кнопки шага диалога
func DraftData(prefix, draft, value string) string {
	if value == "" {
		return prefix + draft
	}
	return prefix + draft + ":" + value
}

// ClockData кодирует время без двоеточия: 09:30 -> 0930
func ClockData(c model.ClockTime) string {
	return fmt.Sprintf("%02d%02d", c.Hour, c.Minute)
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "del:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, nil
}

// ParseDraftCallback разбирает "prefix:draft[:value]"
func ParseDraftCallback(data, prefix string) (draft, value string, err error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok || rest == "" {
		return "", "", ErrInvalidFormat
	}
	draft, value, _ = strings.Cut(rest, ":")
	if draft == "" {
		return "", "", ErrInvalidFormat
	}
	return draft, value, nil
}

// ParseClockData обратное к ClockData
func ParseClockData(v string) (model.ClockTime, error) {
	if len(v) != 4 {
		return model.ClockTime{}, ErrInvalidFormat
	}
	c, err := model.ParseClock(v[:2] + ":" + v[2:])
	if err != nil {
		return model.ClockTime{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return c, nil
}

// ParseDayIndex индекс колонки из callback data
func ParseDayIndex(v string) (model.Weekday, error) {
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 || i >= len(model.Weekdays) {
		return "", ErrInvalidFormat
	}
	return model.Weekdays[i], nil
}
