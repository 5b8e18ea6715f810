package biometric

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
)

func uniformImage(width, height int, gray uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}
	return img
}

func checkerboardImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name         string
		img          image.Image
		wantSuitable bool
		wantReason   string
	}{
		{
			name:         "nil image",
			img:          nil,
			wantSuitable: false,
			wantReason:   "no image data supplied",
		},
		{
			name:         "zero area image",
			img:          image.NewRGBA(image.Rect(0, 0, 0, 0)),
			wantSuitable: false,
			wantReason:   "no image data supplied",
		},
		{
			name:         "full resolution mid gray passes",
			img:          uniformImage(480, 480, 128),
			wantSuitable: true,
		},
		{
			name:         "pitch black fails on lighting",
			img:          uniformImage(480, 480, 0),
			wantSuitable: false,
			wantReason:   "poor lighting",
		},
		{
			name:         "blown out white fails on lighting",
			img:          uniformImage(480, 480, 255),
			wantSuitable: false,
			wantReason:   "poor lighting",
		},
		{
			name:         "tiny crop fails on resolution",
			img:          uniformImage(2, 2, 128),
			wantSuitable: false,
			wantReason:   "low resolution",
		},
		{
			name:         "high contrast checkerboard passes",
			img:          checkerboardImage(480, 480),
			wantSuitable: true,
		},
	}

	assessor := NewQualityAssessor(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := assessor.Assess(tt.img)

			if score.Suitable != tt.wantSuitable {
				t.Errorf("Assess() suitable = %v, want %v (score %+v)", score.Suitable, tt.wantSuitable, score)
			}
			if tt.wantReason != "" && !strings.Contains(score.Reason, tt.wantReason) {
				t.Errorf("Assess() reason = %q, want it to contain %q", score.Reason, tt.wantReason)
			}
			if score.Overall < 0 || score.Overall > 1 {
				t.Errorf("Assess() overall %v outside [0,1]", score.Overall)
			}
			for metric, value := range map[string]float64{
				"resolution": score.Resolution,
				"brightness": score.Brightness,
				"contrast":   score.Contrast,
				"sharpness":  score.Sharpness,
			} {
				if value < 0 || value > 1 {
					t.Errorf("Assess() %s score %v outside [0,1]", metric, value)
				}
			}
		})
	}
}

func TestAssessSubScores(t *testing.T) {
	assessor := NewQualityAssessor(0)

	t.Run("mid gray frame", func(t *testing.T) {
		score := assessor.Assess(uniformImage(480, 480, 128))
		if score.Resolution != 1 {
			t.Errorf("resolution = %v, want 1", score.Resolution)
		}
		if math.Abs(score.Brightness-0.99609375) > 1e-6 {
			t.Errorf("brightness = %v, want ~0.996", score.Brightness)
		}
		if score.Contrast != 0 {
			t.Errorf("contrast = %v, want 0 for a flat image", score.Contrast)
		}
		if score.Sharpness != 0 {
			t.Errorf("sharpness = %v, want 0 for a flat image", score.Sharpness)
		}
	})

	t.Run("checkerboard saturates contrast and sharpness", func(t *testing.T) {
		score := assessor.Assess(checkerboardImage(480, 480))
		if score.Contrast != 1 {
			t.Errorf("contrast = %v, want 1", score.Contrast)
		}
		if score.Sharpness != 1 {
			t.Errorf("sharpness = %v, want 1", score.Sharpness)
		}
	})

	t.Run("quarter reference resolution", func(t *testing.T) {
		score := assessor.Assess(uniformImage(240, 240, 128))
		if math.Abs(score.Resolution-0.25) > 1e-9 {
			t.Errorf("resolution = %v, want 0.25", score.Resolution)
		}
	})
}

func TestAssessOverallIsWeightedSum(t *testing.T) {
	assessor := NewQualityAssessor(0)
	images := []image.Image{
		uniformImage(480, 480, 128),
		uniformImage(480, 480, 0),
		uniformImage(64, 64, 200),
		checkerboardImage(100, 100),
	}
	for _, img := range images {
		score := assessor.Assess(img)
		expected := clamp01(0.30*score.Resolution + 0.25*score.Brightness + 0.25*score.Contrast + 0.20*score.Sharpness)
		if math.Abs(score.Overall-expected) > 1e-9 {
			t.Errorf("Assess() overall = %v, want weighted sum %v", score.Overall, expected)
		}
	}
}

func TestNewQualityAssessorDefaultThreshold(t *testing.T) {
	if got := NewQualityAssessor(0).MinQualityThreshold; got != DefaultMinQuality {
		t.Errorf("NewQualityAssessor(0) threshold = %v, want %v", got, DefaultMinQuality)
	}
	if got := NewQualityAssessor(0.7).MinQualityThreshold; got != 0.7 {
		t.Errorf("NewQualityAssessor(0.7) threshold = %v, want 0.7", got)
	}
}
