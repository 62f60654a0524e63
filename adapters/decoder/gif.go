package decoder

import (
	"context"
	"image/gif"
	"io"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// GIF probes GIF headers using the standard library.
type GIF struct{}

func NewGIF() *GIF { return &GIF{} }

func (g *GIF) CanDecode(ext core.Extension) bool {
	return ext == core.ExtGIF
}

func (g *GIF) DecodeDimensions(ctx context.Context, r io.Reader) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "gif.decode", err)
	}
	cfg, err := gif.DecodeConfig(r)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "gif.decode", err)
	}
	return core.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
