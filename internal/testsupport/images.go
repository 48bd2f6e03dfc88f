package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// WritePNG writes a width x height PNG at path, creating parent directories.
// Pixels form a simple gradient so decoded output is distinguishable from a
// zero-value image.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	if err := mkdirAll(filepath.Dir(path)); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 37) % 256),
				G: uint8((y * 53) % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
