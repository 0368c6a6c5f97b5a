// Package imgkit holds the small image helpers the renderer needs for logo
// overlays: loading, scaling and masking.
package imgkit

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Read loads a PNG or JPEG image, deciding the decoder from the file
// extension.
func Read(path string) (image.Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", path)
	}
	defer fd.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(fd)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(fd)
	default:
		return nil, errors.Errorf("unsupported image extension %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", path)
	}
	return img, nil
}

// Save writes img to path as PNG or JPEG, deciding the encoder from the
// file extension.
func Save(img image.Image, path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create image %s", path)
	}
	defer fd.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(fd, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(fd, img, nil)
	default:
		return errors.Errorf("unsupported image extension %s", filepath.Ext(path))
	}
	return errors.Wrapf(err, "encode image %s", path)
}

// Scale resizes src into rect. CatmullRom keeps edges and transparency
// intact, which matters for logos drawn over high-contrast modules.
func Scale(src image.Image, rect image.Rectangle, scaler draw.Scaler) image.Image {
	if scaler == nil {
		scaler = draw.CatmullRom
	}

	dst := image.NewNRGBA(rect)
	scaler.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	return dst
}

// Fit scales src down so its longer edge equals target pixels, preserving
// the aspect ratio. Images already small enough still get redrawn to the
// target so callers can rely on the output size.
func Fit(src image.Image, target int) image.Image {
	bounds := src.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	var fitW, fitH int
	if w >= h {
		fitW = target
		fitH = int(float64(target) * h / w)
	} else {
		fitH = target
		fitW = int(float64(target) * w / h)
	}
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}
	return Scale(src, image.Rect(0, 0, fitW, fitH), nil)
}

// CircleMask clips src to the largest centered ellipse that fits its
// bounds, leaving the corners transparent.
func CircleMask(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	cx := float64(bounds.Dx()) / 2.0
	cy := float64(bounds.Dy()) / 2.0
	rx, ry := cx, cy

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			ny := (float64(y) + 0.5 - cy) / ry
			if nx*nx+ny*ny > 1 {
				continue
			}
			dst.Set(x, y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

// Gray converts src to 8-bit grayscale.
func Gray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(src.At(x, y))
			gray.SetGray(x, y, c.(color.Gray))
		}
	}
	return gray
}
