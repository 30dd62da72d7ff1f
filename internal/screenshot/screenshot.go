// Package screenshot converts image files into the portable inline
// representation stored on the session record, and accumulates uploads
// under the per-task limit.
package screenshot

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrNotImage is returned for files whose content is not a recognized
// image format.
var ErrNotImage = errors.New("file is not an image")

// ErrLimitReached is returned when adding a screenshot beyond the
// album's capacity. The already-accepted screenshots are unaffected.
var ErrLimitReached = errors.New("maximum number of screenshots reached")

// EncodeFile reads an image file and returns it as a data URI. The MIME
// type is sniffed from the content, not the filename.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading screenshot %s: %w", path, err)
	}
	return Encode(data)
}

// Encode converts raw image bytes to a data URI.
func Encode(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w (detected %s)", ErrNotImage, mime)
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}

// Decode splits a data URI back into its MIME type and raw bytes.
func Decode(dataURI string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	mime = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URI payload: %w", err)
	}
	return mime, data, nil
}

// Album accumulates screenshots during the upload stage: append-only
// while in progress, saved wholesale once confirmed.
type Album struct {
	max   int
	shots []string
}

// NewAlbum creates an album holding at most max screenshots.
func NewAlbum(max int) *Album {
	return &Album{max: max}
}

// AddFile encodes and appends an image file. A full album rejects the
// addition and keeps its existing entries.
func (a *Album) AddFile(path string) error {
	if len(a.shots) >= a.max {
		return fmt.Errorf("%w (%d)", ErrLimitReached, a.max)
	}
	uri, err := EncodeFile(path)
	if err != nil {
		return err
	}
	a.shots = append(a.shots, uri)
	return nil
}

// Add appends an already-encoded data URI.
func (a *Album) Add(dataURI string) error {
	if len(a.shots) >= a.max {
		return fmt.Errorf("%w (%d)", ErrLimitReached, a.max)
	}
	a.shots = append(a.shots, dataURI)
	return nil
}

// Len returns the number of accepted screenshots.
func (a *Album) Len() int { return len(a.shots) }

// List returns the accepted screenshots in upload order.
func (a *Album) List() []string {
	return append([]string(nil), a.shots...)
}
