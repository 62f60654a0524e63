package placeholderkit

import "github.com/Skryldev/placeholder-kit/core"

// Inner exposes the underlying core.Runner for advanced use (e.g., direct
// stage access in tests).  Prefer the high-level API for normal usage.
func (k *Kit) Inner() *core.Runner { return k.inner }
