package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/nfnt/resize"
)

// DataURIPrefix is prepended to the base64 PNG payload.
const DataURIPrefix = "data:image/png;base64,"

// DataURI embeds PNG bytes in a data URI.
func DataURI(pngBytes []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(pngBytes)
}

// ParseDataURI is the inverse of DataURI.
func ParseDataURI(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return nil, errors.New("not a PNG data URI")
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return b, nil
}

// Resize rescales a square PNG to size×size pixels using nearest-neighbour
// sampling, which keeps module edges sharp.
func Resize(pngBytes []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size %d", size)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("png decode: %w", err)
	}
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		return pngBytes, nil
	}
	return encodePNG(resize.Resize(uint(size), uint(size), img, resize.NearestNeighbor))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
