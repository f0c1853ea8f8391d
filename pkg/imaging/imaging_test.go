package imaging_test

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/pkg/imaging"
	"github.com/veyralabs/veyra/pkg/testkit"
)

func decodeSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy(), format
}

func TestThumbnail_NoUpscaling(t *testing.T) {
	src := testkit.PNG(t, 50, 50)

	out, ext, err := imaging.Thumbnail(src, 300, 300)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)

	w, h, _ := decodeSize(t, out)
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)
}

func TestThumbnail_CapsLongerSide(t *testing.T) {
	src := testkit.JPEG(t, 1200, 600)

	out, ext, err := imaging.Thumbnail(src, 300, 300)
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)

	w, h, _ := decodeSize(t, out)
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
}

func TestThumbnail_PortraitAspect(t *testing.T) {
	src := testkit.PNG(t, 248, 496)

	out, _, err := imaging.Thumbnail(src, 124, 124)
	require.NoError(t, err)

	w, h, _ := decodeSize(t, out)
	assert.Equal(t, 62, w)
	assert.Equal(t, 124, h)
}

func TestThumbnail_KeepsSourceFormat(t *testing.T) {
	out, _, err := imaging.Thumbnail(testkit.PNG(t, 400, 400), 124, 124)
	require.NoError(t, err)
	_, _, format := decodeSize(t, out)
	assert.Equal(t, "png", format)

	out, _, err = imaging.Thumbnail(testkit.JPEG(t, 400, 400), 124, 124)
	require.NoError(t, err)
	_, _, format = decodeSize(t, out)
	assert.Equal(t, "jpeg", format)
}

func TestThumbnail_RejectsJunk(t *testing.T) {
	_, _, err := imaging.Thumbnail([]byte("definitely not an image"), 300, 300)
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		name                   string
		w, h, maxW, maxH       int
		wantW, wantH           int
	}{
		{"smaller than box", 50, 50, 300, 300, 50, 50},
		{"exact fit", 300, 300, 300, 300, 300, 300},
		{"landscape capped", 1200, 600, 300, 300, 300, 150},
		{"portrait capped", 600, 1200, 300, 300, 150, 300},
		{"both over, width binds", 1000, 400, 300, 300, 300, 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotW, gotH := imaging.FitSize(tc.w, tc.h, tc.maxW, tc.maxH)
			assert.Equal(t, tc.wantW, gotW)
			assert.Equal(t, tc.wantH, gotH)
		})
	}
}
