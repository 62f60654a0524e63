package decoder

import (
	"context"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// BMP probes BMP headers using golang.org/x/image/bmp.
type BMP struct{}

func NewBMP() *BMP { return &BMP{} }

func (b *BMP) CanDecode(ext core.Extension) bool {
	return ext == core.ExtBMP
}

func (b *BMP) DecodeDimensions(ctx context.Context, r io.Reader) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "bmp.decode", err)
	}
	cfg, err := bmp.DecodeConfig(r)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "bmp.decode", err)
	}
	return core.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
