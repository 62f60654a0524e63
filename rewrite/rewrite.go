// Package rewrite replaces original image URLs with placeholder URLs inside
// document text, and derives the placeholder filenames that back the mapping.
package rewrite

import (
	"sort"
	"strings"

	"github.com/Skryldev/placeholder-kit/core"
)

// Mapping is the one-to-one association from original URL to its
// placeholder's hosted URL.
type Mapping map[string]string

// BuildMapping constructs a Mapping for refs against baseURL, appending each
// reference's filename (as produced by namer) to the base.  A trailing slash
// on baseURL is normalized away before joining.
func BuildMapping(refs []core.ImageReference, baseURL string, namer func(core.ImageReference) string) Mapping {
	base := strings.TrimRight(baseURL, "/")
	m := make(Mapping, len(refs))
	for _, ref := range refs {
		m[ref.URL] = base + "/" + namer(ref)
	}
	return m
}

// Rewrite substitutes every occurrence of each mapping key in doc with its
// value, in a single left-to-right pass with non-overlapping matches; all
// bytes outside matched spans are preserved verbatim.  Because the extractor
// tolerates \/-escaped URLs inside JSON string literals, each key is also
// matched in its escaped rendition (and replaced with the escaped value).
//
// Keys absent from doc are no-ops; URLs in doc absent from the mapping are
// left untouched.  Output is deterministic for a given (doc, mapping) pair:
// candidate keys are ordered longest-first so one URL that prefixes another
// can never shadow it.
func Rewrite(doc string, m Mapping) string {
	if len(m) == 0 || doc == "" {
		return doc
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*4)
	for _, k := range keys {
		v := m[k]
		pairs = append(pairs, k, v, escapeSlashes(k), escapeSlashes(v))
	}
	return strings.NewReplacer(pairs...).Replace(doc)
}

// escapeSlashes renders a URL the way JSON encoders that escape forward
// slashes would embed it.
func escapeSlashes(s string) string {
	return strings.ReplaceAll(s, "/", `\/`)
}
