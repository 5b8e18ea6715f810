package biometric

import (
	"math"

	"veriface.io/infrastructure/biometric/types"
)

const (
	// Landmark sets below this size cannot address the eye indices.
	minLandmarkCount = 468

	// DefaultEARThreshold is the eye-aspect-ratio below which the eyes are
	// considered closed.
	DefaultEARThreshold = 0.2
)

// Six landmarks per eye in role order:
// outerCorner, topOuter, topInner, innerCorner, bottomInner, bottomOuter.
var (
	leftEyeLandmarks  = [6]int{33, 160, 158, 133, 153, 144}
	rightEyeLandmarks = [6]int{263, 387, 385, 362, 380, 373}
)

// BlinkDetector counts completed blinks across a frame sequence. A blink is
// counted on the closed-to-open transition, not when the eyes first close, so
// the count models completed blinks and a sequence that ends mid-blink stays
// one short. Instances carry per-session state and must not be shared across
// concurrent verification attempts.
type BlinkDetector struct {
	EARThreshold float64

	blinkCount           int
	eyesClosedPreviously bool
}

func NewBlinkDetector(earThreshold float64) *BlinkDetector {
	if earThreshold <= 0 {
		earThreshold = DefaultEARThreshold
	}
	return &BlinkDetector{EARThreshold: earThreshold}
}

// Detect computes the per-eye EAR for one frame, updates the transition state
// and returns an immutable observation. Fewer than 468 landmarks fail with
// ErrInvalidLandmarks without touching the running state.
func (bd *BlinkDetector) Detect(landmarks []types.Point) (types.BlinkObservation, error) {
	if len(landmarks) < minLandmarkCount {
		return types.BlinkObservation{}, ErrInvalidLandmarks
	}

	earLeft := eyeAspectRatio(landmarks, leftEyeLandmarks)
	earRight := eyeAspectRatio(landmarks, rightEyeLandmarks)
	earAverage := (earLeft + earRight) / 2.0

	isBlinking := earAverage < bd.EARThreshold
	if bd.eyesClosedPreviously && !isBlinking {
		bd.blinkCount++
	}
	bd.eyesClosedPreviously = isBlinking

	return types.BlinkObservation{
		IsBlinking: isBlinking,
		EARAverage: earAverage,
		EARLeft:    earLeft,
		EARRight:   earRight,
		BlinkCount: bd.blinkCount,
	}, nil
}

// ResetCounter zeroes the blink count and the previous-eye-state flag so the
// detector behaves exactly like a fresh instance.
func (bd *BlinkDetector) ResetCounter() {
	bd.blinkCount = 0
	bd.eyesClosedPreviously = false
}

func (bd *BlinkDetector) BlinkCount() int {
	return bd.blinkCount
}

// eyeAspectRatio measures eye openness as the ratio of the two vertical
// lid distances to the horizontal eye width. A degenerate eye (zero width or
// an index outside the landmark set) contributes 0 instead of failing the
// whole detection.
func eyeAspectRatio(landmarks []types.Point, eye [6]int) float64 {
	for _, idx := range eye {
		if idx < 0 || idx >= len(landmarks) {
			return 0
		}
	}

	outerCorner := landmarks[eye[0]]
	topOuter := landmarks[eye[1]]
	topInner := landmarks[eye[2]]
	innerCorner := landmarks[eye[3]]
	bottomInner := landmarks[eye[4]]
	bottomOuter := landmarks[eye[5]]

	horizontal := pointDistance(outerCorner, innerCorner)
	if horizontal == 0 {
		return 0
	}
	vertical := pointDistance(topOuter, bottomOuter) + pointDistance(topInner, bottomInner)
	return vertical / (2.0 * horizontal)
}

func pointDistance(a, b types.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
