// Package resolve derives placeholder target dimensions from fetch outcomes.
package resolve

import (
	"context"

	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	"github.com/Skryldev/placeholder-kit/utils"
)

// Resolver turns a FetchResult into pixel dimensions.  Every failure path
// degrades to the configured fallback dimensions instead of erroring: one
// unreachable or undecodable image never aborts a run.
type Resolver struct {
	registry core.Registry
	renderer core.Renderer // nil = vector rasterization unavailable
	fallback core.ImageDimensions
	logger   core.Logger
}

// New creates a Resolver backed by the given decoder registry.
func New(cfg config.Config, reg core.Registry) *Resolver {
	fb := core.ImageDimensions{Width: cfg.FallbackWidth, Height: cfg.FallbackHeight}
	if !fb.Valid() {
		fb = core.ImageDimensions{Width: 800, Height: 600}
	}
	return &Resolver{registry: reg, fallback: fb}
}

// SetRenderer attaches an optional vector renderer for SVG input.
func (r *Resolver) SetRenderer(ren core.Renderer) { r.renderer = ren }

// SetLogger attaches a structured logger.
func (r *Resolver) SetLogger(l core.Logger) { r.logger = l }

// Fallback returns the dimensions substituted when resolution fails.
func (r *Resolver) Fallback() core.ImageDimensions { return r.fallback }

// Resolve returns the pixel dimensions for ref's fetched bytes, plus a flag
// reporting whether the fallback default was substituted.  The returned
// dimensions are always positive.
func (r *Resolver) Resolve(ctx context.Context, ref core.ImageReference, fr *core.FetchResult) (core.ImageDimensions, bool) {
	if !fr.OK() {
		return r.fallback, true
	}

	sniffed := sniffExtension(fr.Data)
	if ref.Ext == core.ExtSVG || sniffed == core.ExtSVG {
		return r.resolveVector(ctx, ref, fr.Data)
	}

	if dims, ok := r.decodeWith(ctx, ref.Ext, fr.Data); ok {
		return dims, false
	}
	// The URL's extension lied; trust the sniffed magic bytes instead.
	if sniffed != ref.Ext {
		if dims, ok := r.decodeWith(ctx, sniffed, fr.Data); ok {
			return dims, false
		}
	}
	r.debug("resolve.fallback", "url", ref.URL, "ext", string(ref.Ext))
	return r.fallback, true
}

// resolveVector rasterizes SVG input through the optional renderer.
func (r *Resolver) resolveVector(ctx context.Context, ref core.ImageReference, data []byte) (core.ImageDimensions, bool) {
	if r.renderer == nil {
		r.debug("resolve.render_unavailable", "url", ref.URL)
		return r.fallback, true
	}
	dims, err := r.renderer.Rasterize(ctx, data)
	if err != nil || !dims.Valid() {
		r.debug("resolve.render_failed", "url", ref.URL)
		return r.fallback, true
	}
	return dims, false
}

func (r *Resolver) decodeWith(ctx context.Context, ext core.Extension, data []byte) (core.ImageDimensions, bool) {
	dec, ok := r.registry.DecoderFor(ext)
	if !ok {
		return core.ImageDimensions{}, false
	}
	dims, err := dec.DecodeDimensions(ctx, utils.BytesReader(data))
	if err != nil || !dims.Valid() {
		return core.ImageDimensions{}, false
	}
	return dims, true
}

func (r *Resolver) debug(msg string, fields ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields...)
	}
}

// sniffExtension maps magic-byte detection onto the Extension enum.
func sniffExtension(data []byte) core.Extension {
	switch utils.DetectFormat(data) {
	case "jpeg":
		return core.ExtJPEG
	case "png":
		return core.ExtPNG
	case "gif":
		return core.ExtGIF
	case "bmp":
		return core.ExtBMP
	case "webp":
		return core.ExtWebP
	case "svg":
		return core.ExtSVG
	}
	return core.ExtUnknown
}
