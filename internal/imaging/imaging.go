// Package imaging reads texture dimensions and builds thumbnails.
package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mydehq/texlib/internal/types"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// DefaultThumbnailWidth is the pixel width thumbnails are scaled down to.
const DefaultThumbnailWidth = 200

// ErrUnsupported is returned for formats whose pixels cannot be decoded.
var ErrUnsupported = errors.New("unsupported image format")

// Decoder reads images from disk. The zero value has no size limit.
type Decoder struct {
	// MaxBytes caps how much of a file is read for a full decode.
	MaxBytes int64
}

// New returns a Decoder with a 512 MiB read limit.
func New() *Decoder {
	return &Decoder{MaxBytes: 512 << 20}
}

// Dimensions returns an image's pixel size from its header only.
// Radiance HDR and OpenEXR headers are parsed directly; other formats go
// through the registered image decoders.
func (d *Decoder) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, types.ErrImageDecode{Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var w, h int
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr":
		w, h, err = hdrDimensions(r)
	case ".exr":
		w, h, err = exrDimensions(r)
	default:
		var cfg image.Config
		cfg, _, err = image.DecodeConfig(r)
		w, h = cfg.Width, cfg.Height
	}
	if err != nil {
		return 0, 0, types.ErrImageDecode{Path: path, Err: err}
	}
	return w, h, nil
}

// Thumbnail decodes an image and scales it down to maxWidth, keeping the
// aspect ratio. Images narrower than maxWidth are returned as decoded.
func (d *Decoder) Thumbnail(path string, maxWidth int) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr", ".exr":
		return nil, types.ErrImageDecode{Path: path, Err: ErrUnsupported}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, types.ErrImageDecode{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if d.MaxBytes > 0 {
		r = io.LimitReader(f, d.MaxBytes)
	}

	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, types.ErrImageDecode{Path: path, Err: err}
	}

	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img, nil
	}
	// Height 0 keeps the aspect ratio.
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3), nil
}

// EncodeJPEG writes img as a JPEG.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// Resolution formats a pixel size as "WxH".
func Resolution(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
