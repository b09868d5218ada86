package background

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Thumbnail bounding box
const (
	ThumbWidth  = 125
	ThumbHeight = 75
)

// ErrDecode marks an image that could not be read or decoded
var ErrDecode = errors.New("image decode failed")

// Decoder turns an image path into a pixel buffer scaled to fit a box
type Decoder interface {
	DecodeScaled(path string, maxWidth, maxHeight int) (image.Image, error)
}

// FileDecoder decodes images from the local filesystem.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognised.
type FileDecoder struct {
	// Scaler defaults to CatmullRom
	Scaler xdraw.Scaler
}

// DecodeScaled decodes path and scales it to fit within maxWidth x maxHeight, preserving aspect ratio
func (d FileDecoder) DecodeScaled(path string, maxWidth, maxHeight int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrDecode)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: invalid box %dx%d", ErrDecode, maxWidth, maxHeight)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty %s image", ErrDecode, path, format)
	}

	w, h := FitSize(b.Dx(), b.Dy(), maxWidth, maxHeight)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	scaler := d.Scaler
	if scaler == nil {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, nil
}

// FitSize returns the largest size with the aspect ratio of w x h that fits the box
func FitSize(w, h, maxWidth, maxHeight int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxWidth, maxHeight
	}
	// Compare w/h against maxWidth/maxHeight without floating point.
	if w*maxHeight >= h*maxWidth {
		nh := (h*maxWidth + w/2) / w
		return maxWidth, max(nh, 1)
	}
	nw := (w*maxHeight + h/2) / h
	return max(nw, 1), maxHeight
}

// Placeholder returns the fully opaque black thumbnail used when nothing resolves
func Placeholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.NRGBA{A: 0xff}}, image.Point{}, draw.Src)
	return img
}
