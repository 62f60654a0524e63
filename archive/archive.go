// Package archive aggregates named byte buffers into a ZIP archive.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

// Entry is one named file inside an archive.
type Entry struct {
	Name string
	Data []byte
}

// Build writes entries, in order, into a single deflate-compressed ZIP buffer.
// Entry names must be unique: archive formats require unique member names, so
// a duplicate is a caller error and rejected outright.
func Build(entries []Entry) ([]byte, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return nil, apperrors.New(apperrors.CategoryArchive, "build",
				fmt.Errorf("%w: %q", apperrors.ErrDuplicateEntry, e.Name))
		}
		seen[e.Name] = struct{}{}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CategoryArchive, "build.create", err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, apperrors.Wrap(apperrors.CategoryArchive, "build.write", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryArchive, "build.close", err)
	}
	return buf.Bytes(), nil
}
