package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/image/font/sfnt"
)

func sampleLectures() []*model.Lecture {
	return []*model.Lecture{
		{ID: 1, Name: "Algorithms", Classroom: "Bldg A-101", Day: model.Monday, StartTime: "09:00", EndTime: "10:30"},
		{ID: 2, Name: "A", Classroom: "R1", Day: model.Tuesday, StartTime: "10:00", EndTime: "11:00"},
		{ID: 3, Name: "B", Classroom: "R2", Day: model.Tuesday, StartTime: "10:00", EndTime: "11:00"},
		{ID: 4, Name: "Weekend", Day: model.Weekday("토"), StartTime: "09:00", EndTime: "10:00"},
	}
}

func TestImageRenderer_Render(t *testing.T) {
	r, err := NewImageRenderer("")
	require.NoError(t, err)

	lectures := sampleLectures()
	data, err := r.Render(grid.Build(lectures), lectures)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestImageRenderer_EmptyGrid(t *testing.T) {
	r, err := NewImageRenderer("")
	require.NoError(t, err)

	data, err := r.Render(grid.Build(nil), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestNewImageRenderer_MissingFont(t *testing.T) {
	_, err := NewImageRenderer("/nonexistent/font.ttf")
	assert.Error(t, err)
}

func TestNewImageRenderer_DefaultFontHasHangul(t *testing.T) {
	r, err := NewImageRenderer("")
	require.NoError(t, err)

	var buf sfnt.Buffer
	for _, ch := range "월화수목금시간표" {
		idx, err := r.regular.GlyphIndex(&buf, ch)
		require.NoError(t, err)
		assert.NotZero(t, idx, string(ch))

		idx, err = r.bold.GlyphIndex(&buf, ch)
		require.NoError(t, err)
		assert.NotZero(t, idx, string(ch))
	}
}

func TestImageRenderer_FaceFallsBackForLatin(t *testing.T) {
	r, err := NewImageRenderer("")
	require.NoError(t, err)

	for _, style := range []FontStyle{FontStyleDefault, FontStyleBold} {
		face, err := r.face(labelFontSize, style)
		require.NoError(t, err)

		mixed, ok := face.(*mixedFace)
		require.True(t, ok)

		for _, ch := range "월Algorithms 09:30-101" {
			_, ok := face.GlyphAdvance(ch)
			assert.True(t, ok, string(ch))
		}
		assert.Same(t, mixed.primary, mixed.pick('월'))
		assert.Same(t, mixed.fallback, mixed.pick('A'))
		assert.Same(t, mixed.fallback, mixed.pick('9'))
		assert.Zero(t, face.Kern('월', 'A'))
	}
}

func TestXLSX(t *testing.T) {
	lectures := sampleLectures()
	data, err := XLSX(grid.Build(lectures), lectures)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TimetableSheet, LecturesSheet}, f.GetSheetList())

	// B2 = понедельник 09:00
	v, err := f.GetCellValue(TimetableSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms / Bldg A-101", v)

	v, err = f.GetCellValue(TimetableSheet, "B3")
	require.NoError(t, err)
	assert.Empty(t, v)

	// C4 = вторник 10:00, метка первого занятия
	v, err = f.GetCellValue(TimetableSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "A / R1", v)

	v, err = f.GetCellValue(TimetableSheet, "A17")
	require.NoError(t, err)
	assert.Equal(t, "16:30", v)

	rows, err := f.GetRows(LecturesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, len(lectures)+1)
	assert.Equal(t, "Weekend", rows[4][1])
}

func TestCSVRoundTrip(t *testing.T) {
	lectures := sampleLectures()
	lectures[0].Classroom = "Bldg A-101, 2F"

	data, err := CSV(lectures)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,name,classroom,day,startTime,endTime")

	parsed, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, lectures, parsed)
}

func TestCSV_Empty(t *testing.T) {
	data, err := CSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "id,name,classroom,day,startTime,endTime", string(bytes.TrimSpace(data)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "알고리즘", truncate("알고리즘", 4))
	assert.Equal(t, "알고리…", truncate("알고리즘개론", 4))
}
