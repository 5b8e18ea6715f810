package biometric

import (
	"image"
	"strings"

	"gonum.org/v1/gonum/stat"

	"veriface.io/infrastructure/biometric/types"
)

const (
	// Reference face crop used to normalize the resolution score.
	referenceEdgePixels = 480

	idealBrightness    = 128.0
	contrastreference  = 50.0
	sharpnessReference = 500.0

	weightResolution = 0.30
	weightBrightness = 0.25
	weightContrast   = 0.25
	weightSharpness  = 0.20

	// Sub-scores below this value get called out in the rejection reason.
	subScoreFloor = 0.3

	DefaultMinQuality = 0.5
)

// QualityAssessor scores cropped face images on resolution, brightness,
// contrast and sharpness and gates them on a weighted overall score.
type QualityAssessor struct {
	MinQualityThreshold float64
}

// NewQualityAssessor builds an assessor. A non-positive threshold falls back
// to DefaultMinQuality.
func NewQualityAssessor(minQualityThreshold float64) *QualityAssessor {
	if minQualityThreshold <= 0 {
		minQualityThreshold = DefaultMinQuality
	}
	return &QualityAssessor{MinQualityThreshold: minQualityThreshold}
}

// Assess produces a fresh QualityScore for the supplied face crop. A nil or
// zero-area image yields all-zero scores with an explicit reason instead of
// panicking.
func (qa *QualityAssessor) Assess(img image.Image) types.QualityScore {
	if img == nil {
		return types.QualityScore{Suitable: false, Reason: "no image data supplied"}
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return types.QualityScore{Suitable: false, Reason: "no image data supplied"}
	}

	luma := luminancePlane(img)

	score := types.QualityScore{
		Resolution: resolutionScore(width, height),
		Brightness: brightnessScore(luma),
		Contrast:   contrastScore(luma),
		Sharpness:  sharpnessScore(luma, width, height),
	}
	score.Overall = clamp01(weightResolution*score.Resolution +
		weightBrightness*score.Brightness +
		weightContrast*score.Contrast +
		weightSharpness*score.Sharpness)
	score.Suitable = score.Overall >= qa.MinQualityThreshold
	if !score.Suitable {
		score.Reason = qa.describeRejection(score)
	}
	return score
}

func (qa *QualityAssessor) describeRejection(score types.QualityScore) string {
	weak := []string{}
	if score.Resolution < subScoreFloor {
		weak = append(weak, "low resolution")
	}
	if score.Brightness < subScoreFloor {
		weak = append(weak, "poor lighting")
	}
	if score.Contrast < subScoreFloor {
		weak = append(weak, "low contrast")
	}
	if score.Sharpness < subScoreFloor {
		weak = append(weak, "image too blurry")
	}
	if len(weak) == 0 {
		return "overall image quality below acceptable threshold"
	}
	return strings.Join(weak, ", ")
}

// luminancePlane flattens the image into a row-major single-channel plane on
// the 0..255 scale.
func luminancePlane(img image.Image) []float64 {
	bounds := img.Bounds()
	plane := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			plane = append(plane, (0.299*float64(r)+0.587*float64(g)+0.114*float64(b))/256.0)
		}
	}
	return plane
}

func resolutionScore(width, height int) float64 {
	pixels := float64(width * height)
	return clamp01(pixels / float64(referenceEdgePixels*referenceEdgePixels))
}

// brightnessScore decays symmetrically from ideal mid-gray.
func brightnessScore(luma []float64) float64 {
	mean := stat.Mean(luma, nil)
	deviation := mean - idealBrightness
	if deviation < 0 {
		deviation = -deviation
	}
	score := 1.0 - deviation/idealBrightness
	if score < 0 {
		return 0
	}
	return score
}

func contrastScore(luma []float64) float64 {
	return clamp01(stat.PopStdDev(luma, nil) / contrastreference)
}

// sharpnessScore is the variance of a 4-neighbour Laplacian response, a
// high-pass edge-energy proxy. Images too small to hold the kernel interior
// score zero.
func sharpnessScore(luma []float64, width, height int) float64 {
	if width < 3 || height < 3 {
		return 0
	}
	responses := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := luma[y*width+x]
			lap := luma[(y-1)*width+x] + luma[(y+1)*width+x] +
				luma[y*width+x-1] + luma[y*width+x+1] - 4*center
			responses = append(responses, lap)
		}
	}
	return clamp01(stat.PopVariance(responses, nil) / sharpnessReference)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
