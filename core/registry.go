package core

import "sync"

// ── Registry ──────────────────────────────────────────────────────────────────

// DefaultRegistry is a thread-safe implementation of Registry.
type DefaultRegistry struct {
	mu       sync.RWMutex
	decoders map[Extension]Decoder
}

// NewRegistry returns an empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{decoders: make(map[Extension]Decoder)}
}

func (r *DefaultRegistry) RegisterDecoder(ext Extension, d Decoder) {
	r.mu.Lock()
	r.decoders[ext] = d
	r.mu.Unlock()
}

func (r *DefaultRegistry) DecoderFor(ext Extension) (Decoder, bool) {
	r.mu.RLock()
	d, ok := r.decoders[ext]
	r.mu.RUnlock()
	return d, ok
}
