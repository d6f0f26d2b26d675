package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-reflection-raytracer/pkg/core"
)

// Framebuffer holds one color per pixel in row-major order.
// Goroutines may write disjoint pixels concurrently.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Vec3ToColor converts a Vec3 color to RGBA, clamping to [0, 1] and rounding
// to the nearest 8-bit value
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}

// ToRGBA converts the framebuffer to an 8-bit image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(fb.At(x, y)))
		}
	}
	return img
}
