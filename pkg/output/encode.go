package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Supported output formats
const (
	FormatPNG  = "png"
	FormatPPM  = "ppm"
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Encode writes img to w in the named format
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatPPM:
		return EncodePPM(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}

// ContentType returns the MIME type for a supported format
func ContentType(format string) string {
	switch format {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatWebP:
		return "image/webp"
	case FormatTGA:
		return "image/x-tga"
	default:
		return "image/png"
	}
}

// EncodePPM writes a plain-text P3 dump: one "R G B" triple per pixel,
// integers 0-255, row-major from the top of the image
func EncodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("output: write ppm header: %w", err)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, bl>>8); err != nil {
				return fmt.Errorf("output: write ppm pixel: %w", err)
			}
		}
	}

	return bw.Flush()
}

// Downsample scales img to width x height with CatmullRom filtering.
// Used to resolve supersampled renders back to the requested resolution.
func Downsample(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Thumbnail returns a Lanczos3 preview no wider than maxWidth,
// preserving the aspect ratio
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Lanczos3)
}
