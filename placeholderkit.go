// Package placeholderkit turns JSON documents that embed image URLs into
// dimension-matched placeholder sets: it extracts the URLs, fetches the
// originals, synthesizes solid-fill placeholders of identical size, rewrites
// the document to point at the placeholders, and bundles everything into ZIP
// archives.
package placeholderkit

import (
	"context"
	"fmt"

	"github.com/Skryldev/placeholder-kit/adapters/decoder"
	"github.com/Skryldev/placeholder-kit/archive"
	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	"github.com/Skryldev/placeholder-kit/extract"
	"github.com/Skryldev/placeholder-kit/fetch"
	"github.com/Skryldev/placeholder-kit/resolve"
	"github.com/Skryldev/placeholder-kit/rewrite"
	"github.com/Skryldev/placeholder-kit/synth"
	"github.com/Skryldev/placeholder-kit/utils"
)

// Re-export Format constants for convenience.
const (
	PNG  = core.FormatPNG
	JPEG = core.FormatJPEG
)

// DefaultConfig returns a sensible production configuration.
func DefaultConfig() config.Config { return config.Default() }

// Kit is the primary entry point.
type Kit struct {
	inner    *core.Runner
	reg      *core.DefaultRegistry
	resolver *resolve.Resolver
	namer    func(core.ImageReference) string
}

// New creates a fully wired Kit with the built-in JPEG, PNG, GIF, BMP, and
// WebP dimension decoders registered.  Pass a custom config.Config to
// override defaults.
func New(cfg config.Config) *Kit {
	reg := core.NewRegistry()
	// Register built-in codecs.  JPEG also serves extension-less URLs since
	// its decoder tolerates the unknown hint.
	jpegDec := decoder.NewJPEG()
	reg.RegisterDecoder(core.ExtJPG, jpegDec)
	reg.RegisterDecoder(core.ExtJPEG, jpegDec)
	reg.RegisterDecoder(core.ExtUnknown, jpegDec)
	reg.RegisterDecoder(core.ExtPNG, decoder.NewPNG())
	reg.RegisterDecoder(core.ExtGIF, decoder.NewGIF())
	reg.RegisterDecoder(core.ExtBMP, decoder.NewBMP())
	reg.RegisterDecoder(core.ExtWebP, decoder.NewWebP())

	resolver := resolve.New(cfg, reg)
	runner := core.NewRunner(cfg,
		extract.New(),
		fetch.New(cfg),
		resolver,
		synth.New(cfg),
	)
	namer := rewrite.Namer(cfg)
	runner.Namer = namer

	return &Kit{inner: runner, reg: reg, resolver: resolver, namer: namer}
}

// SetLogger attaches a structured logger.
func (k *Kit) SetLogger(l core.Logger) {
	k.inner.SetLogger(l)
	k.resolver.SetLogger(l)
}

// SetMetrics attaches a metrics collector.
func (k *Kit) SetMetrics(m core.MetricsCollector) { k.inner.SetMetrics(m) }

// AddHook registers an observer for per-URL stage events.
func (k *Kit) AddHook(h core.Hook) { k.inner.AddHook(h) }

// SetRenderer attaches an optional vector renderer (see adapters/svg) used to
// resolve SVG dimensions.  Without one, SVG references degrade to fallback
// dimensions.
func (k *Kit) SetRenderer(r core.Renderer) { k.resolver.SetRenderer(r) }

// RegisterDecoder registers a custom dimension decoder for the given extension.
func (k *Kit) RegisterDecoder(ext core.Extension, d core.Decoder) { k.reg.RegisterDecoder(ext, d) }

// Start starts the background worker pool for async jobs.
func (k *Kit) Start() { k.inner.Start() }

// Stop shuts down the worker pool.
func (k *Kit) Stop() { k.inner.Stop() }

// Submit enqueues an async document run for the worker pool.
func (k *Kit) Submit(job core.Job) error { return k.inner.Submit(job) }

// Extract returns the document's unique image references in first-seen order
// without fetching anything.
func (k *Kit) Extract(doc string) []core.ImageReference { return k.inner.Extract(doc) }

// Run executes the full pipeline over doc: extraction, then one isolated
// fetch/resolve/synthesize unit per reference.
func (k *Kit) Run(ctx context.Context, doc string, opts core.RunOptions) (*core.RunResult, error) {
	return k.inner.Run(ctx, doc, opts)
}

// Mapping builds the original→placeholder URL mapping for refs against
// baseURL, using the configured naming pattern.
func (k *Kit) Mapping(refs []core.ImageReference, baseURL string) rewrite.Mapping {
	return rewrite.BuildMapping(refs, baseURL, k.namer)
}

// Rewrite substitutes mapped URLs inside doc, byte-for-byte outside the
// replaced spans.
func (k *Kit) Rewrite(doc string, m rewrite.Mapping) string {
	return rewrite.Rewrite(doc, m)
}

// OriginalsArchive bundles the successfully fetched original bytes into a ZIP
// buffer.  Entry names come from each URL's basename; when two URLs share a
// basename, later entries are disambiguated with their reference index.
func (k *Kit) OriginalsArchive(run *core.RunResult) ([]byte, error) {
	var entries []archive.Entry
	seen := make(map[string]struct{}, len(run.References))
	for _, ref := range run.References {
		res, ok := run.Results[ref.URL]
		if !ok || !res.Fetch.OK() {
			continue
		}
		name := utils.FilenameFromURL(ref.URL)
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%d_%s", ref.Index, name)
		}
		seen[name] = struct{}{}
		entries = append(entries, archive.Entry{Name: name, Data: res.Fetch.Data})
	}
	return archive.Build(entries)
}

// PlaceholdersArchive bundles the synthesized placeholders into a ZIP buffer
// under their convention filenames.
func (k *Kit) PlaceholdersArchive(run *core.RunResult) ([]byte, error) {
	var entries []archive.Entry
	for _, ref := range run.References {
		res, ok := run.Results[ref.URL]
		if !ok || res.Placeholder == nil {
			continue
		}
		entries = append(entries, archive.Entry{Name: res.Filename, Data: res.Placeholder.Data})
	}
	return archive.Build(entries)
}

// Stats returns lightweight processing statistics.
func (k *Kit) Stats() (processed, errors int64) {
	return k.inner.ProcessedCount(), k.inner.ErrorCount()
}
