package synth

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

func defaultSynth() *Synthesizer { return New(config.Default()) }

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestSynthesize_ExactDimensions(t *testing.T) {
	s := defaultSynth()
	targets := []core.ImageDimensions{
		{Width: 800, Height: 600},
		{Width: 123, Height: 45},
		{Width: 1, Height: 1},
	}
	for _, target := range targets {
		ph, err := s.Synthesize(context.Background(), core.PlaceholderSpec{
			Fill:   color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC},
			Target: target,
		})
		require.NoError(t, err)
		assert.Equal(t, target, ph.Dims)

		cfg, err := png.DecodeConfig(bytes.NewReader(ph.Data))
		require.NoError(t, err)
		assert.Equal(t, target.Width, cfg.Width)
		assert.Equal(t, target.Height, cfg.Height)
	}
}

func TestSynthesize_RejectsInvalidTarget(t *testing.T) {
	s := defaultSynth()
	for _, target := range []core.ImageDimensions{
		{Width: 0, Height: 0},
		{Width: -1, Height: 600},
		{Width: 800, Height: 0},
	} {
		_, err := s.Synthesize(context.Background(), core.PlaceholderSpec{Target: target})
		require.Error(t, err)
		assert.True(t, apperrors.IsCategory(err, apperrors.CategorySynthesize))
		assert.ErrorIs(t, err, apperrors.ErrInvalidDimensions)
	}
}

func TestSynthesize_FillColor(t *testing.T) {
	s := defaultSynth()
	fill := color.RGBA{R: 0x33, G: 0x66, B: 0x99}

	ph, err := s.Synthesize(context.Background(), core.PlaceholderSpec{
		Fill:   fill,
		Target: core.ImageDimensions{Width: 40, Height: 30},
	})
	require.NoError(t, err)

	img := decodePNG(t, ph.Data)
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0x33), r>>8)
	assert.Equal(t, uint32(0x66), g>>8)
	assert.Equal(t, uint32(0x99), b>>8)
	assert.Equal(t, uint32(0xFF), a>>8)
}

func TestSynthesize_WhiteFillGetsBlackText(t *testing.T) {
	s := defaultSynth()
	ph, err := s.Synthesize(context.Background(), core.PlaceholderSpec{
		Fill:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF},
		Label:  "Placeholder",
		Target: core.ImageDimensions{Width: 800, Height: 600},
	})
	require.NoError(t, err)

	img := decodePNG(t, ph.Data)
	darkest := 1.0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := Luminance(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
			if lum < darkest {
				darkest = lum
			}
		}
	}
	assert.Less(t, darkest, 0.25, "expected dark glyph pixels on a white fill")
}

func TestSynthesize_LabelChangesOutput(t *testing.T) {
	s := defaultSynth()
	spec := core.PlaceholderSpec{
		Fill:   color.RGBA{R: 0x20, G: 0x20, B: 0x20},
		Target: core.ImageDimensions{Width: 400, Height: 300},
	}

	plain, err := s.Synthesize(context.Background(), spec)
	require.NoError(t, err)

	spec.Label = "400 x 300"
	labeled, err := s.Synthesize(context.Background(), spec)
	require.NoError(t, err)

	assert.NotEqual(t, plain.Data, labeled.Data)
}

func TestSynthesize_JPEGOutput(t *testing.T) {
	cfg := config.Default()
	cfg.OutputFormat = "jpeg"
	s := New(cfg)

	ph, err := s.Synthesize(context.Background(), core.PlaceholderSpec{
		Fill:   color.RGBA{R: 0x10, G: 0x80, B: 0xF0},
		Target: core.ImageDimensions{Width: 64, Height: 48},
	})
	require.NoError(t, err)
	assert.Equal(t, core.FormatJPEG, ph.Format)

	jcfg, err := jpeg.DecodeConfig(bytes.NewReader(ph.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, jcfg.Width)
	assert.Equal(t, 48, jcfg.Height)
}

func TestSynthesize_CanceledContext(t *testing.T) {
	s := defaultSynth()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Synthesize(ctx, core.PlaceholderSpec{Target: core.ImageDimensions{Width: 10, Height: 10}})
	assert.Error(t, err)
}

func TestTextColor(t *testing.T) {
	black := color.RGBA{A: 0xFF}
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	assert.Equal(t, black, TextColor(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF}))
	assert.Equal(t, white, TextColor(color.RGBA{}))
	// Mid gray sits a hair above the threshold, so text goes black.
	assert.Equal(t, black, TextColor(color.RGBA{R: 0x80, G: 0x80, B: 0x80}))
	// Saturated blue is perceptually dark despite its high channel value.
	assert.Equal(t, white, TextColor(color.RGBA{B: 0xFF}))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance(color.RGBA{}), 1e-9)
	assert.InDelta(t, 1.0, Luminance(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF}), 1e-9)
	assert.InDelta(t, 0.7152, Luminance(color.RGBA{G: 0xFF}), 1e-4)
}
