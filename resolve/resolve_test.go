package resolve

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/placeholder-kit/adapters/decoder"
	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newResolver() *Resolver {
	reg := core.NewRegistry()
	jpegDec := decoder.NewJPEG()
	reg.RegisterDecoder(core.ExtJPG, jpegDec)
	reg.RegisterDecoder(core.ExtJPEG, jpegDec)
	reg.RegisterDecoder(core.ExtUnknown, jpegDec)
	reg.RegisterDecoder(core.ExtPNG, decoder.NewPNG())
	reg.RegisterDecoder(core.ExtGIF, decoder.NewGIF())
	return New(config.Default(), reg)
}

func TestResolve_DecodesTrueDimensions(t *testing.T) {
	r := newResolver()
	ref := core.ImageReference{URL: "https://x.test/a.png", Ext: core.ExtPNG}

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched(pngBytes(t, 123, 45), "image/png"))

	assert.False(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 123, Height: 45}, dims)
}

func TestResolve_NetworkFailureFallsBack(t *testing.T) {
	r := newResolver()
	ref := core.ImageReference{URL: "https://x.test/a.png", Ext: core.ExtPNG}

	dims, fallback := r.Resolve(context.Background(), ref, core.NetworkFailure("request failed"))

	assert.True(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 800, Height: 600}, dims)
}

func TestResolve_LyingExtensionUsesSniffedBytes(t *testing.T) {
	r := newResolver()
	// URL claims JPEG but the bytes are PNG.
	ref := core.ImageReference{URL: "https://x.test/a.jpg", Ext: core.ExtJPG}

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched(pngBytes(t, 64, 32), "image/jpeg"))

	assert.False(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 64, Height: 32}, dims)
}

func TestResolve_UndecodableBytesFallBack(t *testing.T) {
	r := newResolver()
	ref := core.ImageReference{URL: "https://x.test/a.png", Ext: core.ExtPNG}

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched([]byte("garbage bytes here"), "image/png"))

	assert.True(t, fallback)
	assert.Equal(t, r.Fallback(), dims)
}

func TestResolve_SVGWithoutRendererFallsBack(t *testing.T) {
	r := newResolver()
	ref := core.ImageReference{URL: "https://x.test/a.svg", Ext: core.ExtSVG}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="320" height="240"></svg>`)

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched(svg, "image/svg+xml"))

	assert.True(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 800, Height: 600}, dims)
}

type stubRenderer struct {
	dims core.ImageDimensions
	err  error
}

func (s *stubRenderer) Rasterize(_ context.Context, _ []byte) (core.ImageDimensions, error) {
	return s.dims, s.err
}

func TestResolve_SVGWithRenderer(t *testing.T) {
	r := newResolver()
	r.SetRenderer(&stubRenderer{dims: core.ImageDimensions{Width: 320, Height: 240}})
	ref := core.ImageReference{URL: "https://x.test/a.svg", Ext: core.ExtSVG}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="320" height="240"></svg>`)

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched(svg, "image/svg+xml"))

	assert.False(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 320, Height: 240}, dims)
}

func TestResolve_RendererErrorFallsBack(t *testing.T) {
	r := newResolver()
	r.SetRenderer(&stubRenderer{err: errors.New("rasterize failed")})
	ref := core.ImageReference{URL: "https://x.test/a.svg", Ext: core.ExtSVG}

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched([]byte("<svg></svg>"), "image/svg+xml"))

	assert.True(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 800, Height: 600}, dims)
}

func TestResolve_SniffedSVGRoutesToRenderer(t *testing.T) {
	// Extension-less URL whose body is SVG markup still takes the vector path.
	r := newResolver()
	r.SetRenderer(&stubRenderer{dims: core.ImageDimensions{Width: 10, Height: 20}})
	ref := core.ImageReference{URL: "https://x.test/render", Ext: core.ExtUnknown}
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)

	dims, fallback := r.Resolve(context.Background(), ref, core.Fetched(svg, "image/svg+xml"))

	assert.False(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 10, Height: 20}, dims)
}

func TestResolve_ConfiguredFallback(t *testing.T) {
	cfg := config.Default()
	cfg.FallbackWidth = 1024
	cfg.FallbackHeight = 768
	r := New(cfg, core.NewRegistry())

	dims, fallback := r.Resolve(context.Background(), core.ImageReference{URL: "https://x.test/a.png", Ext: core.ExtPNG}, core.NetworkFailure("down"))

	assert.True(t, fallback)
	assert.Equal(t, core.ImageDimensions{Width: 1024, Height: 768}, dims)
}

func TestResolve_AlwaysReturnsValidDimensions(t *testing.T) {
	r := newResolver()
	cases := []*core.FetchResult{
		nil,
		core.NetworkFailure(""),
		core.DecodeFailure("nonsense"),
		core.Fetched([]byte{0x01}, ""),
	}
	for _, fr := range cases {
		dims, _ := r.Resolve(context.Background(), core.ImageReference{URL: "https://x.test/a.png", Ext: core.ExtPNG}, fr)
		assert.True(t, dims.Valid())
	}
}
