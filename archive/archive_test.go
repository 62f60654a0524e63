package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Skryldev/placeholder-kit/errors"
)

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = content
	}
	return out
}

func TestBuild_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "placeholder_0.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}},
		{Name: "placeholder_1.png", Data: []byte("second entry")},
	}

	data, err := Build(entries)
	require.NoError(t, err)

	files := readZip(t, data)
	require.Len(t, files, 2)
	assert.Equal(t, entries[0].Data, files["placeholder_0.png"])
	assert.Equal(t, entries[1].Data, files["placeholder_1.png"])
}

func TestBuild_PreservesEntryOrder(t *testing.T) {
	entries := []Entry{
		{Name: "b.png", Data: []byte("b")},
		{Name: "a.png", Data: []byte("a")},
		{Name: "c.png", Data: []byte("c")},
	}

	data, err := Build(entries)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"b.png", "a.png", "c.png"}, names)
}

func TestBuild_RejectsDuplicateNames(t *testing.T) {
	_, err := Build([]Entry{
		{Name: "photo.png", Data: []byte("one")},
		{Name: "photo.png", Data: []byte("two")},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEntry)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryArchive))
	assert.Contains(t, err.Error(), "photo.png")
}

func TestBuild_EmptyInput(t *testing.T) {
	data, err := Build(nil)
	require.NoError(t, err)

	assert.Empty(t, readZip(t, data))
}
