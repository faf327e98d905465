// Package imageio decodes and encodes the image file formats the fx CLI
// accepts. Formats are selected by file extension with content sniffing as
// the decode fallback.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned for a file extension or format name
	// with no registered codec.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// decodeFormats maps a normalized format name to its decoder.
var decodeFormats = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpeg": jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tiff": tiff.Decode,
	"tga":  tga.Decode,
}

// Format returns the normalized codec name for a file path ("jpeg" for
// .jpg/.jpeg, and so on), or ErrUnsupportedFormat.
func Format(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	case ".tga":
		return "tga", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DecodeFormats lists the format names Load can decode, sorted.
func DecodeFormats() []string {
	return []string{"bmp", "gif", "jpeg", "png", "tga", "tiff"}
}

// EncodeFormats lists the format names Save can encode, sorted.
func EncodeFormats() []string {
	return []string{"bmp", "gif", "jpeg", "png", "tga", "tiff", "webp"}
}

// Load reads and decodes the image at path. The decoder is chosen by file
// extension; unknown extensions fall back to content sniffing.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	format, ferr := Format(path)
	if ferr != nil {
		return Decode(f)
	}

	decode, ok := decodeFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: cannot decode %s", ErrUnsupportedFormat, format)
	}

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", format, err)
	}
	return img, nil
}

// Decode decodes an image from r, sniffing the format from its content.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, nil
}

// Save encodes img to path, choosing the codec from the file extension.
// quality applies to JPEG only (1-100; 0 selects DefaultJPEGQuality).
func Save(path string, img image.Image, quality int) error {
	format, err := Format(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		if quality > 100 {
			quality = 100
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, nil)
	case "tga":
		err = tga.Encode(w, img)
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}
