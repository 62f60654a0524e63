package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Skryldev/placeholder-kit/config"
	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// Runner is the central orchestrator.  It fans one unit of work per
// ImageReference (fetch → resolve → synthesize) across a bounded set of
// goroutines and slots each outcome into its own map entry keyed by URL.
// Safe for concurrent use.
type Runner struct {
	cfg         config.Config
	extractor   Extractor
	fetcher     Fetcher
	resolver    Resolver
	synthesizer Synthesizer

	// Namer derives the placeholder filename for a reference.  Set by the
	// facade; a nil Namer leaves ReferenceResult.Filename empty.
	Namer func(ref ImageReference) string

	hooks   []Hook
	logger  Logger
	metrics MetricsCollector

	// Worker pool.
	jobQueue chan Job
	wg       sync.WaitGroup
	once     sync.Once
	shutdown chan struct{}

	// Atomic counters for lightweight internal metrics.
	processedCount int64
	errorCount     int64
}

// NewRunner creates a Runner with the given config and stage implementations.
// Call Start() before submitting async jobs; call Stop() when done.
func NewRunner(cfg config.Config, ex Extractor, f Fetcher, r Resolver, s Synthesizer) *Runner {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Runner{
		cfg:         cfg,
		extractor:   ex,
		fetcher:     f,
		resolver:    r,
		synthesizer: s,
		jobQueue:    make(chan Job, queueSize),
		shutdown:    make(chan struct{}),
	}
}

// SetLogger attaches a structured logger.
func (r *Runner) SetLogger(l Logger) { r.logger = l }

// SetMetrics attaches a metrics collector.
func (r *Runner) SetMetrics(m MetricsCollector) { r.metrics = m }

// AddHook registers a stage observer.
func (r *Runner) AddHook(h Hook) { r.hooks = append(r.hooks, h) }

// workerCount resolves the configured pool size.
func (r *Runner) workerCount() int {
	if r.cfg.WorkerCount > 0 {
		return r.cfg.WorkerCount
	}
	return runtime.NumCPU()
}

// Extract runs only the extraction stage.
func (r *Runner) Extract(doc string) []ImageReference {
	return r.extractor.Extract(doc)
}

// Run executes the full pipeline over doc: extract references, then one
// isolated unit per reference.  Per-URL failures degrade that single entry;
// the only errors returned are context cancellation and synthesizer
// precondition violations (malformed internal state).
func (r *Runner) Run(ctx context.Context, doc string, opts RunOptions) (*RunResult, error) {
	start := time.Now()

	refs := r.extractor.Extract(doc)
	run := &RunResult{
		ID:         uuid.NewString(),
		References: refs,
		Results:    make(map[string]*ReferenceResult, len(refs)),
	}
	if r.logger != nil {
		r.logger.Info("run.start", "run_id", run.ID, "references", len(refs))
	}
	if len(refs) == 0 {
		run.Elapsed = time.Since(start)
		return run, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		errOnce  sync.Once
	)
	sem := make(chan struct{}, r.workerCount())

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			// Abort between units; in-flight units still land in their slots.
			errOnce.Do(func() { firstErr = apperrors.Wrap(apperrors.CategoryPipeline, "run", err) })
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(ref ImageReference) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := r.processUnit(ctx, ref, opts)
			if err != nil {
				atomic.AddInt64(&r.errorCount, 1)
				errOnce.Do(func() { firstErr = err })
			} else {
				atomic.AddInt64(&r.processedCount, 1)
			}
			mu.Lock()
			run.Results[ref.URL] = res
			mu.Unlock()
		}(ref)
	}
	wg.Wait()

	run.Elapsed = time.Since(start)
	if r.logger != nil {
		r.logger.Info("run.done",
			"run_id", run.ID,
			"fetched", run.Fetched(),
			"degraded", run.Degraded(),
			"elapsed_ms", run.Elapsed.Milliseconds(),
		)
	}
	return run, firstErr
}

// processUnit runs the fetch → resolve → synthesize chain for one reference.
// Fetch and resolve degrade instead of failing; the returned error is non-nil
// only for synthesizer precondition violations.
func (r *Runner) processUnit(ctx context.Context, ref ImageReference, opts RunOptions) (*ReferenceResult, error) {
	res := &ReferenceResult{Ref: ref}
	if r.Namer != nil {
		res.Filename = r.Namer(ref)
	}

	// ── fetch ─────────────────────────────────────────────────────────────
	r.notifyBefore(ctx, StageFetch, ref.URL)
	t := time.Now()
	res.Fetch = r.fetcher.Fetch(ctx, ref.URL)
	r.observe(ctx, StageFetch, ref.URL, time.Since(t), res.Fetch)

	// ── resolve ───────────────────────────────────────────────────────────
	r.notifyBefore(ctx, StageResolve, ref.URL)
	t = time.Now()
	res.Dims, res.Fallback = r.resolver.Resolve(ctx, ref, res.Fetch)
	r.notifyAfter(ctx, StageResolve, ref.URL, time.Since(t), nil)
	if res.Fallback && r.metrics != nil {
		r.metrics.RecordFallback()
	}

	// ── synthesize ────────────────────────────────────────────────────────
	r.notifyBefore(ctx, StageSynthesize, ref.URL)
	t = time.Now()
	ph, err := r.synthesizer.Synthesize(ctx, PlaceholderSpec{
		Fill:   opts.Fill,
		Label:  opts.Label,
		Target: res.Dims,
	})
	r.notifyAfter(ctx, StageSynthesize, ref.URL, time.Since(t), err)
	if err != nil {
		// The resolver guarantees positive dimensions, so this is malformed
		// internal state and must surface to the caller.
		if r.logger != nil {
			r.logger.Error("unit.synthesize", "url", ref.URL, "error", err.Error())
		}
		return res, err
	}
	res.Placeholder = ph
	if r.metrics != nil {
		r.metrics.RecordThroughput(int64(len(ph.Data)))
	}
	return res, nil
}

// observe reports a fetch stage outcome to hooks and metrics, translating the
// degraded branches into recorded (not propagated) failures.
func (r *Runner) observe(ctx context.Context, stage, url string, d time.Duration, fr *FetchResult) {
	var err error
	if !fr.OK() {
		err = apperrors.New(categoryFor(fr.Status), stage, apperrors.ErrEmptyInput)
		if fr.Reason != "" {
			err = apperrors.New(categoryFor(fr.Status), stage, errReason(fr.Reason))
		}
		if r.metrics != nil {
			r.metrics.RecordError(stage, string(fr.Status))
		}
	}
	r.notifyAfter(ctx, stage, url, d, err)
}

func categoryFor(s FetchStatus) apperrors.Category {
	if s == StatusDecodeFailure {
		return apperrors.CategoryDecode
	}
	return apperrors.CategoryFetch
}

type errReason string

func (e errReason) Error() string { return string(e) }

// ── worker pool internals ─────────────────────────────────────────────────────

// Start launches the worker pool.  It is idempotent.
func (r *Runner) Start() {
	r.once.Do(func() {
		for i := 0; i < r.workerCount(); i++ {
			r.wg.Add(1)
			go r.worker()
		}
	})
}

// Stop shuts down all workers.
func (r *Runner) Stop() {
	close(r.shutdown)
	r.wg.Wait()
}

// Submit enqueues an async job.  Returns ErrWorkerPoolFull if the queue is full.
func (r *Runner) Submit(job Job) error {
	select {
	case r.jobQueue <- job:
		return nil
	default:
		return apperrors.New(apperrors.CategoryPipeline, "submit", apperrors.ErrWorkerPoolFull)
	}
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.shutdown:
			return
		case job, ok := <-r.jobQueue:
			if !ok {
				return
			}
			r.processJob(job)
		}
	}
}

func (r *Runner) processJob(job Job) {
	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := r.Run(ctx, job.Document, job.Options)
	if job.ResultCh != nil {
		job.ResultCh <- JobResult{JobID: job.ID, Result: result, Err: err}
	}
}

func (r *Runner) notifyBefore(ctx context.Context, stage, url string) {
	for _, h := range r.hooks {
		h.BeforeStage(ctx, stage, url)
	}
}

func (r *Runner) notifyAfter(ctx context.Context, stage, url string, d time.Duration, err error) {
	if r.metrics != nil {
		r.metrics.RecordStageTime(stage, d)
	}
	for _, h := range r.hooks {
		h.AfterStage(ctx, stage, url, d, err)
	}
}

// ProcessedCount returns the total number of successfully processed references.
func (r *Runner) ProcessedCount() int64 { return atomic.LoadInt64(&r.processedCount) }

// ErrorCount returns the total number of unit-level errors.
func (r *Runner) ErrorCount() int64 { return atomic.LoadInt64(&r.errorCount) }
