//go:build cgo

// Package svg provides an optional libvips-backed vector renderer.
//
// libvips loads SVG through librsvg and reports the document's intrinsic
// pixel dimensions, which is exactly what the dimension resolver needs.  The
// package is an adapter: builds without libvips simply leave the resolver's
// Renderer nil and SVG references degrade to fallback dimensions.
package svg

import (
	"context"
	"runtime"

	govips "github.com/davidbyttow/govips/v2/vips"

	"github.com/Skryldev/placeholder-kit/core"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// BackendConfig configures the libvips backend.
type BackendConfig struct {
	MaxCacheSize int
	MaxWorkers   int
	ReportLeaks  bool
}

// Backend is a libvips-powered core.Renderer.  Safe for concurrent use across
// goroutines.
type Backend struct {
	cfg BackendConfig
}

// NewBackend initialises libvips and returns a ready Backend.
// Call Shutdown() when the process exits.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	govips.Startup(&govips.Config{
		ConcurrencyLevel: cfg.MaxWorkers,
		MaxCacheSize:     cfg.MaxCacheSize,
		ReportLeaks:      cfg.ReportLeaks,
	})
	return &Backend{cfg: cfg}
}

// Shutdown releases all libvips resources. Call once at process exit.
func (b *Backend) Shutdown() {
	govips.Shutdown()
}

// Rasterize loads svg and returns its intrinsic pixel dimensions.
func (b *Backend) Rasterize(ctx context.Context, svg []byte) (core.ImageDimensions, error) {
	if err := ctx.Err(); err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryRender, "svg.rasterize", err)
	}

	ref, err := govips.NewImageFromBuffer(svg)
	if err != nil {
		return core.ImageDimensions{}, apperrors.Wrap(apperrors.CategoryRender, "svg.rasterize", err)
	}
	defer ref.Close()

	dims := core.ImageDimensions{Width: ref.Width(), Height: ref.Height()}
	if !dims.Valid() {
		return core.ImageDimensions{}, apperrors.New(apperrors.CategoryRender, "svg.rasterize",
			apperrors.ErrInvalidDimensions)
	}
	return dims, nil
}
