package decoder

import (
	"context"
	"image/png"
	"io"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// PNG probes PNG headers using the standard library.
type PNG struct{}

func NewPNG() *PNG { return &PNG{} }

func (p *PNG) CanDecode(ext core.Extension) bool {
	return ext == core.ExtPNG
}

func (p *PNG) DecodeDimensions(ctx context.Context, r io.Reader) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "png.decode", err)
	}
	cfg, err := png.DecodeConfig(r)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "png.decode", err)
	}
	return core.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
