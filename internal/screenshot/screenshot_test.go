package screenshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal payload carrying the PNG signature, enough for
// content-type sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

func TestEncodeDetectsImageType(t *testing.T) {
	uri, err := Encode(pngBytes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeRejectsNonImages(t *testing.T) {
	_, err := Encode([]byte("just some text, definitely not pixels"))
	require.ErrorIs(t, err, ErrNotImage)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	uri, err := Encode(pngBytes)
	require.NoError(t, err)

	mime, data, err := Decode(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngBytes, data)
}

func TestDecodeRejectsMalformedURIs(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"not a data uri", "https://example.com/shot.png"},
		{"no comma", "data:image/png;base64"},
		{"bad base64", "data:image/png;base64,???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.uri)
			assert.Error(t, err)
		})
	}
}

func TestEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o644))

	uri, err := EncodeFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err = EncodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestAlbumEnforcesCapacity(t *testing.T) {
	album := NewAlbum(2)

	require.NoError(t, album.Add("data:image/png;base64,AAAA"))
	require.NoError(t, album.Add("data:image/png;base64,BBBB"))
	assert.Equal(t, 2, album.Len())

	err := album.Add("data:image/png;base64,CCCC")
	require.ErrorIs(t, err, ErrLimitReached)
	assert.Equal(t, 2, album.Len(), "a full album keeps its entries")
}

func TestAlbumListIsACopy(t *testing.T) {
	album := NewAlbum(3)
	require.NoError(t, album.Add("data:image/png;base64,AAAA"))

	list := album.List()
	list[0] = "tampered"

	assert.Equal(t, "data:image/png;base64,AAAA", album.List()[0])
}
