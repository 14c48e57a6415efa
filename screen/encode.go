package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

// DataURIPrefix is the self-describing header of the transport
// encoding produced by EncodeDataURI.
const DataURIPrefix = "data:image/png;base64,"

// EncodeDataURI serializes an image as lossless PNG wrapped in a
// transport-safe data URI.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// WritePNG saves an image as a PNG file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("png encode: %w", err)
	}
	return f.Close()
}

// DecodeDataURI reverses EncodeDataURI back into an image. Used by the
// demo flow and tests.
func DecodeDataURI(s string) (image.Image, error) {
	if !strings.HasPrefix(s, DataURIPrefix) {
		return nil, fmt.Errorf("missing %q prefix", DataURIPrefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, DataURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("png decode: %w", err)
	}
	return img, nil
}
