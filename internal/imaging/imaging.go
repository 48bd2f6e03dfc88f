// Package imaging decodes, concatenates, and encodes the raster images the
// pairing stage works with. Container format is chosen by file extension;
// PNG, JPEG, BMP, and TIFF are supported.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Decode reads and decodes the image at path. All color channels are
// preserved; the registered codecs decide the in-memory representation.
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Encode writes img to path in the container format implied by the
// extension. jpegQuality applies to .jpg/.jpeg outputs only.
func Encode(path string, img image.Image, jpegQuality int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(file, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".tif", ".tiff":
		err = tiff.Encode(file, img, nil)
	default:
		err = fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return file.Close()
}

// ConcatHorizontal joins b to the right of a. The inputs must share the same
// height; width may differ.
func ConcatHorizontal(a, b image.Image) (image.Image, error) {
	aBounds := a.Bounds()
	bBounds := b.Bounds()
	if aBounds.Dy() != bBounds.Dy() {
		return nil, fmt.Errorf("height %d vs %d", aBounds.Dy(), bBounds.Dy())
	}

	combined := image.NewRGBA(image.Rect(0, 0, aBounds.Dx()+bBounds.Dx(), aBounds.Dy()))
	draw.Draw(combined, image.Rect(0, 0, aBounds.Dx(), aBounds.Dy()), a, aBounds.Min, draw.Src)
	draw.Draw(combined, image.Rect(aBounds.Dx(), 0, combined.Bounds().Dx(), aBounds.Dy()), b, bBounds.Min, draw.Src)
	return combined, nil
}
