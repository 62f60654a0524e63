package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skryldev/placeholder-kit/core"
)

func TestExtract_URLInsideEscapedMarkup(t *testing.T) {
	doc := `{"data":{"1":"src=\"https://x.test/a.png\""}}`

	refs := New().Extract(doc)

	require.Len(t, refs, 1)
	assert.Equal(t, "https://x.test/a.png", refs[0].URL)
	assert.Equal(t, 0, refs[0].Index)
	assert.Equal(t, core.ExtPNG, refs[0].Ext)
}

func TestExtract_EscapedSlashes(t *testing.T) {
	doc := `{"image":"https:\/\/cdn.site\/img\/photo.jpg","thumb":"https:\/\/cdn.site\/img\/thumb.webp"}`

	refs := New().Extract(doc)

	require.Len(t, refs, 2)
	assert.Equal(t, "https://cdn.site/img/photo.jpg", refs[0].URL)
	assert.Equal(t, core.ExtJPG, refs[0].Ext)
	assert.Equal(t, "https://cdn.site/img/thumb.webp", refs[1].URL)
	assert.Equal(t, core.ExtWebP, refs[1].Ext)
}

func TestExtract_DedupPreservesFirstSeenOrder(t *testing.T) {
	doc := `first https://a.test/one.png then https://b.test/two.gif and again https://a.test/one.png`

	refs := New().Extract(doc)

	require.Len(t, refs, 2)
	assert.Equal(t, "https://a.test/one.png", refs[0].URL)
	assert.Equal(t, "https://b.test/two.gif", refs[1].URL)
	assert.Equal(t, []int{0, 1}, []int{refs[0].Index, refs[1].Index})
}

func TestExtract_Deterministic(t *testing.T) {
	doc := `{"a":"https:\/\/x.test\/p1.jpeg","b":"https://x.test/p2.svg","c":"https://x.test/p3.bmp"}`
	e := New()

	first := e.Extract(doc)
	second := e.Extract(doc)

	assert.Equal(t, first, second)
}

func TestExtract_MalformedJSONStillScanned(t *testing.T) {
	doc := `{"broken": [[[ https://x.test/kept.png`

	refs := New().Extract(doc)

	require.Len(t, refs, 1)
	assert.Equal(t, "https://x.test/kept.png", refs[0].URL)
}

func TestExtract_CaseInsensitiveExtension(t *testing.T) {
	doc := `"https://x.test/SHOUT.PNG"`

	refs := New().Extract(doc)

	require.Len(t, refs, 1)
	assert.Equal(t, core.ExtPNG, refs[0].Ext)
}

func TestExtract_CasingAndQueryVariantsStayDistinct(t *testing.T) {
	doc := `"https://x.test/a.png" "https://x.test/A.png"`

	refs := New().Extract(doc)

	assert.Len(t, refs, 2)
}

func TestExtract_EmptyAndNoMatches(t *testing.T) {
	e := New()

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract(`{"no":"urls here","just":42}`))
	assert.Empty(t, e.Extract(`https://x.test/not-an-image.pdf`))
}

func TestInferExtension(t *testing.T) {
	cases := map[string]core.Extension{
		"https://x.test/a.jpg":  core.ExtJPG,
		"https://x.test/a.jpeg": core.ExtJPEG,
		"https://x.test/a.png":  core.ExtPNG,
		"https://x.test/a.gif":  core.ExtGIF,
		"https://x.test/a.bmp":  core.ExtBMP,
		"https://x.test/a.webp": core.ExtWebP,
		"https://x.test/a.svg":  core.ExtSVG,
		"https://x.test/a":      core.ExtUnknown,
	}
	for url, want := range cases {
		assert.Equal(t, want, InferExtension(url), url)
	}
}
