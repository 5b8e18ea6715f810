package biometric

import (
	"errors"
	"math"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

// landmarksWithEAR builds a full mesh whose six eye landmarks produce the
// requested eye-aspect-ratio on both eyes.
func landmarksWithEAR(ear float64) []types.Point {
	points := make([]types.Point, 468)
	half := ear / 2
	for _, eye := range [][6]int{leftEyeLandmarks, rightEyeLandmarks} {
		points[eye[0]] = types.Point{X: 0, Y: 0}
		points[eye[3]] = types.Point{X: 1, Y: 0}
		points[eye[1]] = types.Point{X: 0.25, Y: half}
		points[eye[5]] = types.Point{X: 0.25, Y: -half}
		points[eye[2]] = types.Point{X: 0.75, Y: half}
		points[eye[4]] = types.Point{X: 0.75, Y: -half}
	}
	return points
}

func openEyes() []types.Point   { return landmarksWithEAR(0.3) }
func closedEyes() []types.Point { return landmarksWithEAR(0.1) }

func TestDetectRejectsShortLandmarkSets(t *testing.T) {
	tests := []struct {
		name   string
		points []types.Point
	}{
		{name: "no landmarks", points: nil},
		{name: "one short of the mesh", points: make([]types.Point, 467)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewBlinkDetector(0)
			_, err := detector.Detect(tt.points)
			if !errors.Is(err, ErrInvalidLandmarks) {
				t.Errorf("Detect() error = %v, want ErrInvalidLandmarks", err)
			}
			if detector.BlinkCount() != 0 {
				t.Errorf("Detect() mutated state on invalid input, count = %d", detector.BlinkCount())
			}
		})
	}
}

func TestBlinkCounting(t *testing.T) {
	open := openEyes()
	closed := closedEyes()

	tests := []struct {
		name      string
		sequence  [][]types.Point
		wantCount int
	}{
		{
			name:      "one completed blink",
			sequence:  [][]types.Point{open, closed, open},
			wantCount: 1,
		},
		{
			name:      "two completed blinks",
			sequence:  [][]types.Point{open, closed, open, closed, open},
			wantCount: 2,
		},
		{
			name:      "all open never counts",
			sequence:  [][]types.Point{open, open, open, open},
			wantCount: 0,
		},
		{
			name:      "all closed never counts",
			sequence:  [][]types.Point{closed, closed, closed},
			wantCount: 0,
		},
		{
			name:      "sequence ending mid blink stays one short",
			sequence:  [][]types.Point{open, closed},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewBlinkDetector(0)
			var last types.BlinkObservation
			for _, frame := range tt.sequence {
				observation, err := detector.Detect(frame)
				if err != nil {
					t.Fatalf("Detect() unexpected error = %v", err)
				}
				last = observation
			}
			if detector.BlinkCount() != tt.wantCount {
				t.Errorf("BlinkCount() = %d, want %d", detector.BlinkCount(), tt.wantCount)
			}
			if last.BlinkCount != tt.wantCount {
				t.Errorf("observation count = %d, want %d", last.BlinkCount, tt.wantCount)
			}
		})
	}
}

func TestDetectObservation(t *testing.T) {
	detector := NewBlinkDetector(0)

	observation, err := detector.Detect(closedEyes())
	if err != nil {
		t.Fatalf("Detect() unexpected error = %v", err)
	}
	if !observation.IsBlinking {
		t.Error("Detect() closed eyes not reported as blinking")
	}
	if math.Abs(observation.EARAverage-0.1) > 1e-9 {
		t.Errorf("Detect() EARAverage = %v, want 0.1", observation.EARAverage)
	}
	if observation.EARLeft != observation.EARRight {
		t.Errorf("Detect() asymmetric EARs for symmetric mesh: %v vs %v", observation.EARLeft, observation.EARRight)
	}

	observation, err = detector.Detect(openEyes())
	if err != nil {
		t.Fatalf("Detect() unexpected error = %v", err)
	}
	if observation.IsBlinking {
		t.Error("Detect() open eyes reported as blinking")
	}
	if observation.BlinkCount != 1 {
		t.Errorf("Detect() count after closed to open = %d, want 1", observation.BlinkCount)
	}
}

func TestDegenerateEyeScoresZero(t *testing.T) {
	// A collapsed eye has no horizontal extent, so its EAR degrades to zero
	// instead of failing the detection.
	detector := NewBlinkDetector(0)
	observation, err := detector.Detect(make([]types.Point, 468))
	if err != nil {
		t.Fatalf("Detect() unexpected error = %v", err)
	}
	if observation.EARAverage != 0 {
		t.Errorf("Detect() EARAverage = %v, want 0", observation.EARAverage)
	}
	if !observation.IsBlinking {
		t.Error("Detect() zero EAR should read as closed eyes")
	}
}

func TestResetCounterMatchesFreshDetector(t *testing.T) {
	sequence := [][]types.Point{openEyes(), closedEyes(), openEyes(), closedEyes(), openEyes()}

	used := NewBlinkDetector(0)
	for _, frame := range sequence {
		if _, err := used.Detect(frame); err != nil {
			t.Fatalf("Detect() unexpected error = %v", err)
		}
	}
	used.ResetCounter()
	if used.BlinkCount() != 0 {
		t.Fatalf("ResetCounter() left count at %d", used.BlinkCount())
	}

	fresh := NewBlinkDetector(0)
	for _, frame := range sequence {
		if _, err := used.Detect(frame); err != nil {
			t.Fatalf("Detect() unexpected error = %v", err)
		}
		if _, err := fresh.Detect(frame); err != nil {
			t.Fatalf("Detect() unexpected error = %v", err)
		}
	}
	if used.BlinkCount() != fresh.BlinkCount() {
		t.Errorf("reset detector counted %d, fresh detector counted %d", used.BlinkCount(), fresh.BlinkCount())
	}
}

func TestNewBlinkDetectorDefaultThreshold(t *testing.T) {
	if got := NewBlinkDetector(0).EARThreshold; got != DefaultEARThreshold {
		t.Errorf("NewBlinkDetector(0) threshold = %v, want %v", got, DefaultEARThreshold)
	}
	if got := NewBlinkDetector(0.25).EARThreshold; got != 0.25 {
		t.Errorf("NewBlinkDetector(0.25) threshold = %v, want 0.25", got)
	}
}
