package decoder

import (
	"context"
	"io"

	"golang.org/x/image/webp"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// WebP probes WebP headers using golang.org/x/image/webp.
// NOTE: golang.org/x/image/webp only supports lossy WebP decoding; header
// probing covers the lossless layout too, which is all the resolver needs.
type WebP struct{}

func NewWebP() *WebP { return &WebP{} }

func (w *WebP) CanDecode(ext core.Extension) bool {
	return ext == core.ExtWebP
}

func (w *WebP) DecodeDimensions(ctx context.Context, r io.Reader) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "webp.decode", err)
	}
	cfg, err := webp.DecodeConfig(r)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "webp.decode", err)
	}
	return core.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
