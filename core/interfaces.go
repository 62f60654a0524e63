package core

import (
	"context"
	"io"
	"time"
)

// Pipeline stage names reported to hooks and metrics.
const (
	StageFetch      = "fetch"
	StageResolve    = "resolve"
	StageSynthesize = "synthesize"
)

// Extractor scans raw document text for image URL candidates.
// The canonical implementation lives in extract/.
type Extractor interface {
	Extract(doc string) []ImageReference
}

// Fetcher retrieves the bytes behind one URL.  Implementations classify the
// outcome instead of returning an error: a run never aborts because one URL
// is unreachable.  Implementations live in fetch/.
type Fetcher interface {
	Fetch(ctx context.Context, url string) *FetchResult
}

// Resolver derives pixel dimensions from a fetch outcome.  The boolean result
// reports whether the returned dimensions are the configured fallback.
// Resolvers never fail and never return non-positive dimensions.
// Implementations live in resolve/.
type Resolver interface {
	Resolve(ctx context.Context, ref ImageReference, fr *FetchResult) (ImageDimensions, bool)
}

// Synthesizer produces a placeholder image for a spec.  The only error path
// is a violated precondition (non-positive target dimensions).
// Implementations live in synth/.
type Synthesizer interface {
	Synthesize(ctx context.Context, spec PlaceholderSpec) (*PlaceholderImage, error)
}

// Decoder probes raster bytes for pixel dimensions.
// Implementations live in adapters/decoder/.
type Decoder interface {
	// DecodeDimensions reads from r and returns the image's width and height.
	DecodeDimensions(ctx context.Context, r io.Reader) (ImageDimensions, error)
	// CanDecode reports whether this decoder handles the given extension hint.
	CanDecode(ext Extension) bool
}

// Renderer rasterizes vector (SVG) bytes far enough to learn their pixel
// dimensions.  The libvips-backed implementation lives in adapters/svg/;
// the resolver treats a nil Renderer as "renderer unavailable" and degrades.
type Renderer interface {
	Rasterize(ctx context.Context, svg []byte) (ImageDimensions, error)
}

// Hook is an optional observer invoked around per-URL pipeline stages.
type Hook interface {
	BeforeStage(ctx context.Context, stage, url string)
	AfterStage(ctx context.Context, stage, url string, d time.Duration, err error)
}

// MetricsCollector receives performance observations from the pipeline.
type MetricsCollector interface {
	RecordStageTime(stage string, d interface{ Seconds() float64 })
	RecordThroughput(bytes int64)
	RecordFallback()
	RecordError(stage string, category string)
}

// Logger is a minimal structured logging interface.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Registry maps Extension values to Decoder implementations.
type Registry interface {
	DecoderFor(ext Extension) (Decoder, bool)
	RegisterDecoder(ext Extension, d Decoder)
}
