package render

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// mixedFace берёт глиф из primary, а если его там нет, из fallback.
// В NanumBarunGothic только хангыль, латиница и цифры идут из Go шрифтов.
type mixedFace struct {
	primary  font.Face
	fallback font.Face
}

func newMixedFace(primary, fallback font.Face) *mixedFace {
	return &mixedFace{primary: primary, fallback: fallback}
}

func (f *mixedFace) pick(r rune) font.Face {
	if _, ok := f.primary.GlyphAdvance(r); ok {
		return f.primary
	}
	return f.fallback
}

func (f *mixedFace) Close() error {
	if err := f.primary.Close(); err != nil {
		return err
	}
	return f.fallback.Close()
}

func (f *mixedFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return f.pick(r).Glyph(dot, r)
}

func (f *mixedFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return f.pick(r).GlyphBounds(r)
}

func (f *mixedFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return f.pick(r).GlyphAdvance(r)
}

// Kern между глифами из разных шрифтов не считается
func (f *mixedFace) Kern(r0, r1 rune) fixed.Int26_6 {
	face := f.pick(r0)
	if face != f.pick(r1) {
		return 0
	}
	return face.Kern(r0, r1)
}

func (f *mixedFace) Metrics() font.Metrics {
	return f.primary.Metrics()
}
