package rewrite

import (
	"fmt"
	"strings"

	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	"github.com/Skryldev/placeholder-kit/utils"
)

// Namer returns the placeholder filename function for cfg's naming pattern.
//
// The default indexed pattern ("placeholder_{index}.{ext}") is collision-free
// by construction, as is the prefix-indexed pattern; the patterns that reuse
// the original basename can collide when two URLs share a basename, which the
// archive builder rejects at assembly time.
func Namer(cfg config.Config) func(core.ImageReference) string {
	prefix := strings.TrimRight(cfg.Prefix, "_")
	switch cfg.Naming {
	case config.NamingOriginal:
		return func(ref core.ImageReference) string {
			original := utils.FilenameFromURL(ref.URL)
			if prefix != "" {
				return prefix + "_" + original
			}
			return stem(original) + ".png"
		}
	case config.NamingOriginalSuffix:
		return func(ref core.ImageReference) string {
			suffix := prefix
			if suffix == "" {
				suffix = "placeholder"
			}
			return stem(utils.FilenameFromURL(ref.URL)) + "_" + suffix + ".png"
		}
	case config.NamingPrefixIndexed:
		return func(ref core.ImageReference) string {
			original := utils.FilenameFromURL(ref.URL)
			if prefix != "" {
				return fmt.Sprintf("%s_%03d_%s", prefix, ref.Index+1, original)
			}
			return fmt.Sprintf("%03d_%s", ref.Index+1, original)
		}
	default: // config.NamingIndexed
		return func(ref core.ImageReference) string {
			return fmt.Sprintf("placeholder_%d.%s", ref.Index, nameExt(ref.Ext))
		}
	}
}

// stem strips the final extension from a filename.
func stem(name string) string {
	if dot := strings.LastIndex(name, "."); dot > 0 {
		return name[:dot]
	}
	return name
}

// nameExt renders an inferred extension for filename use; unknown extensions
// fall back to png, matching the synthesized output's default encoding.
func nameExt(ext core.Extension) string {
	if ext == core.ExtUnknown || ext == "" {
		return "png"
	}
	return string(ext)
}
