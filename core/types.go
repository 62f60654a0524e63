package core

import (
	"context"
	"image/color"
	"time"
)

// Format identifies a raster output codec for synthesized placeholders.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Extension is the image file extension inferred from a URL.
type Extension string

const (
	ExtJPG     Extension = "jpg"
	ExtJPEG    Extension = "jpeg"
	ExtPNG     Extension = "png"
	ExtGIF     Extension = "gif"
	ExtBMP     Extension = "bmp"
	ExtWebP    Extension = "webp"
	ExtSVG     Extension = "svg"
	ExtUnknown Extension = "unknown"
)

// ImageReference is one extracted, deduplicated URL candidate from the source
// document.  Index is the first-seen position; no two references in one
// document share a URL.
type ImageReference struct {
	URL   string
	Index int
	Ext   Extension
}

// FetchStatus tags the outcome of retrieving a URL.
type FetchStatus string

const (
	StatusFetched        FetchStatus = "fetched"
	StatusNetworkFailure FetchStatus = "network_failure"
	StatusDecodeFailure  FetchStatus = "decode_failure"
)

// FetchResult is the immutable outcome of one fetch attempt.  Data and
// ContentType are populated only when Status is StatusFetched; Reason carries
// a human-readable explanation otherwise.
type FetchResult struct {
	Status      FetchStatus
	Data        []byte
	ContentType string
	Reason      string
}

// OK reports whether the fetch produced usable bytes.
func (r *FetchResult) OK() bool { return r != nil && r.Status == StatusFetched }

// Fetched constructs a successful FetchResult.
func Fetched(data []byte, contentType string) *FetchResult {
	return &FetchResult{Status: StatusFetched, Data: data, ContentType: contentType}
}

// NetworkFailure constructs a FetchResult for transport-level failures.
func NetworkFailure(reason string) *FetchResult {
	return &FetchResult{Status: StatusNetworkFailure, Reason: reason}
}

// DecodeFailure constructs a FetchResult for unrecognizable content.
func DecodeFailure(reason string) *FetchResult {
	return &FetchResult{Status: StatusDecodeFailure, Reason: reason}
}

// ImageDimensions is a pixel width/height pair.  Both values are positive in
// any dimensions handed to the synthesizer.
type ImageDimensions struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (d ImageDimensions) Valid() bool { return d.Width > 0 && d.Height > 0 }

// PlaceholderSpec configures one placeholder synthesis.
type PlaceholderSpec struct {
	Fill   color.RGBA
	Label  string // empty = no text overlay
	Target ImageDimensions
}

// PlaceholderImage is a synthesized placeholder.  Dims always equal the
// requested target dimensions.
type PlaceholderImage struct {
	Data   []byte
	Format Format
	Dims   ImageDimensions
}

// ReferenceResult is the per-URL outcome slot of a run.  Each unit of work
// writes exactly one ReferenceResult, keyed by its original URL.
type ReferenceResult struct {
	Ref         ImageReference
	Fetch       *FetchResult
	Dims        ImageDimensions
	Fallback    bool // true when Dims is the configured default
	Placeholder *PlaceholderImage
	Filename    string // placeholder filename per the naming convention
}

// RunResult aggregates one full pipeline run over a document.
type RunResult struct {
	ID         string // unique per run
	References []ImageReference
	Results    map[string]*ReferenceResult // keyed by original URL
	Elapsed    time.Duration
}

// Fetched returns the number of references whose fetch succeeded.
func (r *RunResult) Fetched() int {
	n := 0
	for _, res := range r.Results {
		if res.Fetch.OK() {
			n++
		}
	}
	return n
}

// Degraded returns the number of references that fell back to default dimensions.
func (r *RunResult) Degraded() int {
	n := 0
	for _, res := range r.Results {
		if res.Fallback {
			n++
		}
	}
	return n
}

// URLList returns the extracted URLs, one per line, in first-seen order.
// Matches the export affordance of UI layers.
func (r *RunResult) URLList() string {
	out := ""
	for i, ref := range r.References {
		if i > 0 {
			out += "\n"
		}
		out += ref.URL
	}
	return out
}

// RunStats summarizes one run for reporting layers.
type RunStats struct {
	References       int
	Fetched          int
	Degraded         int
	OriginalBytes    int64 // total bytes fetched
	PlaceholderBytes int64 // total bytes synthesized
	AvgWidth         int
	AvgHeight        int
}

// Stats aggregates the run into a RunStats summary.
func (r *RunResult) Stats() RunStats {
	s := RunStats{References: len(r.References)}
	var sumW, sumH int
	for _, res := range r.Results {
		if res.Fetch.OK() {
			s.Fetched++
			s.OriginalBytes += int64(len(res.Fetch.Data))
		}
		if res.Fallback {
			s.Degraded++
		}
		if res.Placeholder != nil {
			s.PlaceholderBytes += int64(len(res.Placeholder.Data))
		}
		sumW += res.Dims.Width
		sumH += res.Dims.Height
	}
	if n := len(r.Results); n > 0 {
		s.AvgWidth = sumW / n
		s.AvgHeight = sumH / n
	}
	return s
}

// RunOptions carries the caller-chosen knobs for one run.
type RunOptions struct {
	Fill  color.RGBA
	Label string // empty disables the text overlay
}

// Job encapsulates a single async unit of work for the worker pool.
type Job struct {
	ID       string
	Ctx      context.Context //nolint:containedctx // intentional for async jobs
	Document string
	Options  RunOptions
	// Result channel; nil for fire-and-forget.
	ResultCh chan<- JobResult
}

// JobResult wraps the outcome of an async job.
type JobResult struct {
	JobID  string
	Result *RunResult
	Err    error
}
