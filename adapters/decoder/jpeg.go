// Package decoder provides format-specific dimension decoders.
//
// Resolving a placeholder's target size needs only the header-level width and
// height, so decoders use the codec's DecodeConfig path and never materialize
// pixel data.
package decoder

import (
	"context"
	"image/jpeg"
	"io"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// JPEG probes JPEG headers using the standard library.
type JPEG struct{}

// NewJPEG returns an initialised JPEG decoder.
func NewJPEG() *JPEG { return &JPEG{} }

func (j *JPEG) CanDecode(ext core.Extension) bool {
	return ext == core.ExtJPG || ext == core.ExtJPEG || ext == core.ExtUnknown
}

func (j *JPEG) DecodeDimensions(ctx context.Context, r io.Reader) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "jpeg.decode", err)
	}
	cfg, err := jpeg.DecodeConfig(r)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryDecode, "jpeg.decode", err)
	}
	return core.ImageDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
