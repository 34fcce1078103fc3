package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1100
	imageHeight      = 960
	headerHeight     = 110
	leftLabelsWidth  = 90
	cellPadding      = 3.0
	cellBorderRadius = 6.0
	maxLabelRunes    = 24
)

// Константы шрифтов
const (
	titleFontSize     = 28.0
	dayFontSize       = 24.0
	hourLabelFontSize = 17.0
	labelFontSize     = 15.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}
	labelTextColor = color.RGBA{20, 24, 28, 230}

	// Подсветка перекрытий (#f0a8f0)
	continuationColor = color.RGBA{240, 168, 240, 255}

	lecturePalette = []color.RGBA{
		{133, 193, 85, 220},
		{255, 182, 193, 255},
		{135, 190, 235, 230},
		{255, 214, 120, 230},
		{190, 160, 230, 230},
		{120, 210, 200, 230},
	}
)

//go:embed fonts/NanumBarunGothic.ttf
var hangulTTF []byte

// ImageRenderer рисует сетку расписания в PNG
type ImageRenderer struct {
	regular *opentype.Font
	bold    *opentype.Font

	// запасные шрифты для символов, которых нет в основном
	latin     *opentype.Font
	latinBold *opentype.Font
}

// NewImageRenderer загружает шрифты. По умолчанию основной шрифт встроенный
// NanumBarunGothic, fontPath его заменяет.
func NewImageRenderer(fontPath string) (*ImageRenderer, error) {
	hangulData := hangulTTF

	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		hangulData = data
	}

	primary, err := opentype.Parse(hangulData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	latin, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback font: %w", err)
	}
	latinBold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback bold font: %w", err)
	}

	return &ImageRenderer{
		regular:   primary,
		bold:      primary,
		latin:     latin,
		latinBold: latinBold,
	}, nil
}

// face собирает font.Face нужного размера и стиля
func (r *ImageRenderer) face(size float64, style FontStyle) (font.Face, error) {
	primary, fallback := r.regular, r.latin
	if style == FontStyleBold {
		primary, fallback = r.bold, r.latinBold
	}

	opts := &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}
	primaryFace, err := opentype.NewFace(primary, opts)
	if err != nil {
		return nil, err
	}
	fallbackFace, err := opentype.NewFace(fallback, opts)
	if err != nil {
		return nil, err
	}
	return newMixedFace(primaryFace, fallbackFace), nil
}

// loadFont ставит шрифт нужного размера, basicfont как fallback
func (r *ImageRenderer) loadFont(dc *gg.Context, size float64, style FontStyle) {
	face, err := r.face(size, style)
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// Render рисует сетку. lectures нужны только для выбора цвета занятия.
func (r *ImageRenderer) Render(g *grid.Grid, lectures []*model.Lecture) ([]byte, error) {
	colors := paletteFor(lectures)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / grid.DaysPerWeek
	cellHeight := float64(imageHeight-headerHeight) / grid.SlotsPerDay

	r.drawHeader(dc, dayWidth)
	r.drawHourLabels(dc, cellHeight)
	drawDayBackgrounds(dc, dayWidth)
	drawHourLines(dc, cellHeight)

	for s, row := range g.Rows() {
		for d, cell := range row {
			x := float64(leftLabelsWidth) + float64(d)*dayWidth
			y := float64(headerHeight) + float64(s)*cellHeight
			r.drawCell(dc, cell, colors, x, y, dayWidth, cellHeight)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// paletteFor назначает цвет каждому занятию по порядку добавления
func paletteFor(lectures []*model.Lecture) map[int64]color.RGBA {
	colors := make(map[int64]color.RGBA, len(lectures))
	for i, l := range lectures {
		colors[l.ID] = lecturePalette[i%len(lecturePalette)]
	}
	return colors
}

func (r *ImageRenderer) drawHeader(dc *gg.Context, dayWidth float64) {
	r.loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored("시간표", float64(imageWidth)/2, float64(headerHeight)/4, 0.5, 0.5)

	r.loadFont(dc, dayFontSize, FontStyleBold)
	for i, day := range model.Weekdays {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth + dayWidth/2
		dc.DrawStringAnchored(string(day), x, float64(headerHeight)-20, 0.5, 0)
	}
}

// drawHourLabels рисует колонку со временем слотов слева
func (r *ImageRenderer) drawHourLabels(dc *gg.Context, cellHeight float64) {
	r.loadFont(dc, hourLabelFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)

	for s := 0; s < grid.SlotsPerDay; s++ {
		y := float64(headerHeight) + float64(s)*cellHeight + cellHeight/2
		dc.DrawStringAnchored(grid.SlotTime(s).String(), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackgrounds(dc *gg.Context, dayWidth float64) {
	for i := 0; i < grid.DaysPerWeek; i++ {
		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		x := float64(leftLabelsWidth) + float64(i)*dayWidth
		dc.DrawRectangle(x, float64(headerHeight), dayWidth, float64(imageHeight-headerHeight))
		dc.Fill()
	}
}

// drawHourLines рисует горизонтальные линии; линии целых часов толще
func drawHourLines(dc *gg.Context, cellHeight float64) {
	dc.SetColor(hourLineColor)
	for s := 0; s <= grid.SlotsPerDay; s++ {
		width := 0.3
		if s%2 == 0 {
			width = 0.8
		}
		dc.SetLineWidth(width)
		y := float64(headerHeight) + float64(s)*cellHeight
		dc.DrawLine(float64(leftLabelsWidth), y, float64(imageWidth), y)
		dc.Stroke()
	}
}

// drawCell заливает ячейку цветом последнего дошедшего до неё занятия;
// перекрытые ячейки обводятся цветом подсветки, метка пишется только в ячейке-метке
func (r *ImageRenderer) drawCell(dc *gg.Context, cell *grid.Cell, colors map[int64]color.RGBA,
	x, y, width, height float64) {

	if cell.IsEmpty() {
		return
	}

	fill, ok := colors[cell.ColorOwner]
	if !ok {
		fill = continuationColor
	}

	if cell.Kind() == grid.CellContinuation {
		dc.SetColor(fill)
		dc.DrawRectangle(x+cellPadding, y, width-2*cellPadding, height)
		dc.Fill()
	} else {
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x+cellPadding, y+1, width-2*cellPadding, height-2, cellBorderRadius)
		dc.Fill()

		dc.SetColor(darkenColor(fill, 0.8))
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(x+cellPadding, y+1, width-2*cellPadding, height-2, cellBorderRadius)
		dc.Stroke()
	}

	if len(cell.Occupants) > 1 {
		dc.SetColor(continuationColor)
		dc.SetLineWidth(3)
		dc.DrawRectangle(x+cellPadding+1.5, y+1.5, width-2*cellPadding-3, height-3)
		dc.Stroke()
	}

	if cell.Label != nil {
		r.loadFont(dc, labelFontSize, FontStyleBold)
		dc.SetColor(labelTextColor)
		dc.DrawStringAnchored(truncate(cell.Label.Text, maxLabelRunes), x+cellPadding+6, y+height/2, 0, 0.35)
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// truncate обрезает по рунам, чтобы не ломать UTF-8
func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-1]) + "…"
}
