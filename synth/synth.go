// Package synth produces solid-fill placeholder images with centered labels.
package synth

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// Synthesizer renders PlaceholderSpec values to encoded raster bytes.  Safe
// for concurrent use.
type Synthesizer struct {
	format      core.Format
	jpegQuality int
	pngLevel    png.CompressionLevel
	minFont     int
	maxFont     int
}

// New creates a Synthesizer from cfg.
func New(cfg config.Config) *Synthesizer {
	s := &Synthesizer{
		format:      core.FormatPNG,
		jpegQuality: cfg.JPEGQuality,
		pngLevel:    pngLevel(cfg.PNGCompression),
		minFont:     cfg.MinFontSize,
		maxFont:     cfg.MaxFontSize,
	}
	if cfg.OutputFormat == "jpeg" || cfg.OutputFormat == "jpg" {
		s.format = core.FormatJPEG
	}
	if s.jpegQuality <= 0 {
		s.jpegQuality = 85
	}
	if s.minFont <= 0 {
		s.minFont = 20
	}
	if s.maxFont < s.minFont {
		s.maxFont = 100
	}
	return s
}

// Synthesize renders spec to an encoded placeholder.  The output dimensions
// always equal spec.Target; non-positive targets are rejected, never coerced.
func (s *Synthesizer) Synthesize(ctx context.Context, spec core.PlaceholderSpec) (*core.PlaceholderImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySynthesize, "synthesize", err)
	}
	if !spec.Target.Valid() {
		return nil, apperrors.New(apperrors.CategorySynthesize, "synthesize", apperrors.ErrInvalidDimensions)
	}

	w, h := spec.Target.Width, spec.Target.Height
	fill := spec.Fill
	fill.A = 0xFF

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)

	if spec.Label != "" {
		if err := s.drawLabel(canvas, spec.Label, TextColor(fill)); err != nil {
			return nil, err
		}
	}

	data, err := s.encode(canvas)
	if err != nil {
		return nil, err
	}
	return &core.PlaceholderImage{Data: data, Format: s.format, Dims: spec.Target}, nil
}

func (s *Synthesizer) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	switch s.format {
	case core.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.jpegQuality}); err != nil {
			return nil, apperrors.Wrap(apperrors.CategorySynthesize, "jpeg.encode", err)
		}
	default:
		enc := &png.Encoder{CompressionLevel: s.pngLevel}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, apperrors.Wrap(apperrors.CategorySynthesize, "png.encode", err)
		}
	}
	return buf.Bytes(), nil
}

// TextColor picks the higher-contrast of black/white against fill using
// perceptual luminance: above the 0.5 threshold the text is black, else white.
func TextColor(fill color.RGBA) color.RGBA {
	if Luminance(fill) > 0.5 {
		return color.RGBA{A: 0xFF} // black
	}
	return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

// Luminance returns the perceptual (Rec. 709) luminance of c in [0, 1].
func Luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// pngLevel maps the 0-9 zlib-style knob onto Go's discrete compression levels.
func pngLevel(n int) png.CompressionLevel {
	switch {
	case n <= 0:
		return png.NoCompression
	case n <= 3:
		return png.BestSpeed
	case n <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
