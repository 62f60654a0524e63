package utils

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"
)

const (
	formatJPEG    = "jpeg"
	formatPNG     = "png"
	formatGIF     = "gif"
	formatBMP     = "bmp"
	formatWebP    = "webp"
	formatSVG     = "svg"
	formatUnknown = "unknown"
)

// DetectFormat sniffs the leading bytes of data and returns the image format.
func DetectFormat(data []byte) string {
	if len(data) < 4 {
		return formatUnknown
	}
	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return formatJPEG
	}
	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return formatPNG
	}
	// GIF: GIF8
	if data[0] == 'G' && data[1] == 'I' && data[2] == 'F' && data[3] == '8' {
		return formatGIF
	}
	// BMP: BM
	if data[0] == 'B' && data[1] == 'M' {
		return formatBMP
	}
	// WebP: RIFF....WEBP
	if len(data) >= 12 &&
		data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return formatWebP
	}
	// SVG: XML text containing an <svg root somewhere near the top.
	if head := string(data[:min(len(data), 512)]); strings.Contains(head, "<svg") ||
		strings.HasPrefix(strings.TrimSpace(head), "<?xml") {
		return formatSVG
	}
	// Fallback to net/http sniffing.
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return formatJPEG
	case "image/png":
		return formatPNG
	case "image/gif":
		return formatGIF
	case "image/bmp":
		return formatBMP
	case "image/webp":
		return formatWebP
	case "image/svg+xml":
		return formatSVG
	}
	return formatUnknown
}

// FilenameFromURL extracts the basename of a URL's path.  URLs whose path has
// no usable basename get a stable synthetic name derived from a hash of the
// full URL, so distinct URLs never collapse onto one name.
func FilenameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err == nil {
		parts := strings.Split(u.Path, "/")
		name := parts[len(parts)-1]
		if name != "" && strings.Contains(name, ".") {
			return name
		}
	}
	h := fnv.New32a()
	h.Write([]byte(raw))
	return fmt.Sprintf("image_%04d.jpg", h.Sum32()%10000)
}

// CloneBytes returns a copy of b (safe for use after the source buffer is released).
func CloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// BytesReader creates an io.Reader backed by b without allocation.
func BytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
