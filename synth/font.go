package synth

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

var (
	fontOnce   sync.Once
	fontParsed *opentype.Font
	fontErr    error
)

// labelFont lazily parses the bundled Go Regular face.
func labelFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontParsed, fontErr
}

// drawLabel renders text centered on canvas, sizing the face so the text
// stays legible yet fits inside the canvas with margin.
func (s *Synthesizer) drawLabel(canvas *image.RGBA, text string, col color.RGBA) error {
	fnt, err := labelFont()
	if err != nil {
		return apperrors.Wrap(apperrors.CategorySynthesize, "label.font", err)
	}

	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()

	// Font size proportional to the shorter canvas dimension, clamped for
	// legibility, then shrunk until the measured string fits with margin.
	size := min(w, h) / 10
	if size < s.minFont {
		size = s.minFont
	}
	if size > s.maxFont {
		size = s.maxFont
	}
	maxTextW := w * 9 / 10

	var (
		face  font.Face
		textW int
	)
	for {
		face, err = opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return apperrors.Wrap(apperrors.CategorySynthesize, "label.face", err)
		}
		textW = font.MeasureString(face, text).Ceil()
		if textW <= maxTextW || size <= s.minFont {
			break
		}
		next := size * maxTextW / textW
		if next >= size {
			next = size - 1
		}
		if next < s.minFont {
			next = s.minFont
		}
		size = next
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	x := (w - textW) / 2
	y := (h-(ascent+descent))/2 + ascent

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return nil
}
