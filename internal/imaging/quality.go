// Package imaging holds the pre-recognition image checks and the PDF first
// page rasterization boundary. Recognition calls are costly and unreliable
// on degenerate input, so unsuitable files are rejected here, before any
// external call is made.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Limits configures the quality gate thresholds.
type Limits struct {
	// MinWidth and MinHeight are the minimum acceptable pixel dimensions.
	MinWidth  int
	MinHeight int

	// MaxBytes is the maximum accepted encoded size.
	MaxBytes int64

	// ExtremeFraction rejects an image when more than this fraction of
	// sampled pixels sit at a single extreme (near-black or near-white).
	ExtremeFraction float64
}

// DefaultLimits returns the standard quality gate thresholds: 500x300
// minimum resolution, 10 MiB maximum size, 90% extreme-pixel cutoff.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:        500,
		MinHeight:       300,
		MaxBytes:        10 * 1024 * 1024,
		ExtremeFraction: 0.9,
	}
}

// Pixel luminance cutoffs for the histogram check, and the sampling cap
// that keeps the check cheap on large scans.
const (
	nearBlackMax = 10
	nearWhiteMin = 245
	maxSamples   = 1 << 17
)

// CheckQuality decides whether an image is worth sending to the recognition
// service. It returns false with a human-readable reason when the encoded
// size exceeds the limit, the image cannot be decoded, the resolution is
// below the minimum, or the pixel histogram shows a near-blank or
// near-black frame. The check is read-only.
func CheckQuality(data []byte, limits Limits) (bool, string) {
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return false, fmt.Sprintf("file size %d bytes exceeds the maximum of %d bytes", len(data), limits.MaxBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false, "unable to decode image - the file may be corrupted or in an unsupported format"
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < limits.MinWidth || height < limits.MinHeight {
		return false, fmt.Sprintf("image resolution %dx%d is below the minimum of %dx%d required for reliable extraction",
			width, height, limits.MinWidth, limits.MinHeight)
	}

	dark, light, total := sampleExtremes(img)
	if total > 0 {
		if float64(dark)/float64(total) > limits.ExtremeFraction {
			return false, "image is almost entirely dark - please rescan with better lighting"
		}
		if float64(light)/float64(total) > limits.ExtremeFraction {
			return false, "image appears to be blank - please check the scanned page"
		}
	}

	return true, ""
}

// sampleExtremes counts near-black and near-white pixels over a strided
// sample of the image.
func sampleExtremes(img image.Image) (dark, light, total int) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	stride := 1
	for (width/stride)*(height/stride) > maxSamples {
		stride++
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			switch {
			case gray <= nearBlackMax:
				dark++
			case gray >= nearWhiteMin:
				light++
			}
			total++
		}
	}
	return dark, light, total
}
