package renderer

import (
	"image"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int // Total number of pixels rendered
	HitPixels        int // Pixels whose primary ray hit a sphere
	BackgroundPixels int // Pixels showing the plain background
	EscapedPixels    int // Pixels whose reflection chain left the scene
	ShadowedPixels   int // Pixels shaded in shadow
	TotalBounces     int // Reflection bounces across all pixels
	MaxBounces       int // Most bounces taken by a single pixel
	CandidateTests   int // Primary ray/sphere tests the image index allowed
}

// AddPixel records the outcome of a single pixel
func (rs *RenderStats) AddPixel(info PixelInfo) {
	rs.TotalPixels++
	rs.CandidateTests += info.Candidates

	if !info.Hit {
		rs.BackgroundPixels++
		return
	}

	rs.HitPixels++
	rs.TotalBounces += info.Bounces
	rs.MaxBounces = max(rs.MaxBounces, info.Bounces)
	if info.Escaped {
		rs.EscapedPixels++
	}
	if info.InShadow {
		rs.ShadowedPixels++
	}
}

// Merge folds the statistics of another region into rs
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.HitPixels += other.HitPixels
	rs.BackgroundPixels += other.BackgroundPixels
	rs.EscapedPixels += other.EscapedPixels
	rs.ShadowedPixels += other.ShadowedPixels
	rs.TotalBounces += other.TotalBounces
	rs.MaxBounces = max(rs.MaxBounces, other.MaxBounces)
	rs.CandidateTests += other.CandidateTests
}

// AverageCandidates returns the mean number of spheres tested per primary ray
func (rs RenderStats) AverageCandidates() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.CandidateTests) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance computes the average luminance of an image
// using Rec. 709 weights on the 8-bit channels.
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
