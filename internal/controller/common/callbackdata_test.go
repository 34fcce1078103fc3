package common

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback(DeleteData(1700000000123))
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), id)

	_, err = ParseIDFromCallback("del:abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDFromCallback("del")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseDraftCallback(t *testing.T) {
	draft, value, err := ParseDraftCallback(DraftData(AddDay, "d-1", "3"), AddDay)
	require.NoError(t, err)
	assert.Equal(t, "d-1", draft)
	assert.Equal(t, "3", value)

	draft, value, err = ParseDraftCallback(DraftData(AddSkipRoom, "d-2", ""), AddSkipRoom)
	require.NoError(t, err)
	assert.Equal(t, "d-2", draft)
	assert.Empty(t, value)

	_, _, err = ParseDraftCallback(AddDay, AddDay)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseDraftCallback("add_end:x:0900", AddStart)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestClockData(t *testing.T) {
	c := model.ClockTime{Hour: 9, Minute: 30}
	assert.Equal(t, "0930", ClockData(c))

	parsed, err := ParseClockData("0930")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	for _, bad := range []string{"930", "9:30", "2500", "ab30"} {
		_, err := ParseClockData(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestParseDayIndex(t *testing.T) {
	day, err := ParseDayIndex("0")
	require.NoError(t, err)
	assert.Equal(t, model.Monday, day)

	day, err = ParseDayIndex("4")
	require.NoError(t, err)
	assert.Equal(t, model.Friday, day)

	for _, bad := range []string{"5", "-1", "x"} {
		_, err := ParseDayIndex(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "이미 삭제된 강의예요", ErrorMessage(ErrLectureNotFound))
	assert.Contains(t, ErrorMessage(ErrStaleDialog), "/add")
	assert.Contains(t, ErrorMessage(errors.New("boom")), "오류")
}
