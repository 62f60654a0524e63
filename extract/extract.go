// Package extract locates image URL candidates inside raw document text.
//
// Extraction is deliberately a single-pass pattern scan over the text rather
// than a JSON-tree walk: real-world exports embed URLs inside stringified
// HTML/shortcode markup within JSON values, and partially corrupt documents
// must remain usable.  Successful JSON parsing is never required.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Skryldev/placeholder-kit/core"
)

var (
	// URLs inside JSON string literals commonly carry \/-escaped slashes.
	escapedPattern = regexp.MustCompile(`(?i)https?:\\/\\/[^"'<>]+\.(?:jpg|jpeg|png|gif|bmp|webp|svg)`)
	// Direct, unescaped URLs.
	directPattern = regexp.MustCompile(`(?i)https?://[^"'<>\s]+\.(?:jpg|jpeg|png|gif|bmp|webp|svg)`)

	trailingJunk = regexp.MustCompile(`["',;}\]]+$`)
	validURL     = regexp.MustCompile(`^(?i)https?://.+\..+`)
)

// Extractor scans documents for image URLs.  The zero value is not usable;
// call New.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor { return &Extractor{} }

// candidate is one raw regex hit, tagged with its byte offset so first-seen
// order survives the merge of the two patterns.
type candidate struct {
	pos int
	url string
}

// Extract returns the unique image URL candidates of doc in first-seen order.
// Empty input or no matches yields an empty slice, never an error.
func (e *Extractor) Extract(doc string) []core.ImageReference {
	if doc == "" {
		return nil
	}

	var cands []candidate
	for _, m := range escapedPattern.FindAllStringIndex(doc, -1) {
		raw := strings.ReplaceAll(doc[m[0]:m[1]], `\/`, "/")
		cands = append(cands, candidate{pos: m[0], url: raw})
	}
	for _, m := range directPattern.FindAllStringIndex(doc, -1) {
		cands = append(cands, candidate{pos: m[0], url: doc[m[0]:m[1]]})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })

	seen := make(map[string]struct{}, len(cands))
	var refs []core.ImageReference
	for _, c := range cands {
		url := trailingJunk.ReplaceAllString(c.url, "")
		if !validURL.MatchString(url) {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		refs = append(refs, core.ImageReference{
			URL:   url,
			Index: len(refs),
			Ext:   InferExtension(url),
		})
	}
	return refs
}

// InferExtension derives the Extension enum from a URL's trailing extension.
func InferExtension(url string) core.Extension {
	dot := strings.LastIndex(url, ".")
	if dot < 0 || dot == len(url)-1 {
		return core.ExtUnknown
	}
	switch strings.ToLower(url[dot+1:]) {
	case "jpg":
		return core.ExtJPG
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
