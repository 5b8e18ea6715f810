package biometric

import (
	"errors"
	"image"

	"veriface.io/infrastructure/biometric/types"
)

// DefaultMinBlinks is the number of completed blinks a challenge must show
// before liveness passes.
const DefaultMinBlinks = 3

// LivenessVerifier drives a BlinkDetector across an ordered frame sequence
// and decides pass or fail against a minimum-blink requirement. Like the
// detector it wraps, an instance serves one verification attempt at a time.
type LivenessVerifier struct {
	MinBlinks int

	detector *BlinkDetector
}

func NewLivenessVerifier(minBlinks int, earThreshold float64) (*LivenessVerifier, error) {
	if minBlinks < 1 {
		return nil, errors.New("minimum blink requirement must be at least 1")
	}
	return &LivenessVerifier{
		MinBlinks: minBlinks,
		detector:  NewBlinkDetector(earThreshold),
	}, nil
}

// Verify resets the detector, feeds it every landmark set in order and
// passes when the final blink count reaches MinBlinks. The frame and
// landmark sequences must be the same length. Empty input fails the
// challenge immediately without touching the detector. A frame whose
// landmark set is too small to address the eye indices is skipped instead
// of aborting the sequence.
func (verifier *LivenessVerifier) Verify(frames []image.Image, landmarksPerFrame [][]types.Point) (bool, error) {
	if len(frames) != len(landmarksPerFrame) {
		return false, ErrSequenceLengthMismatch
	}
	if len(frames) == 0 {
		return false, nil
	}

	verifier.detector.ResetCounter()
	for _, landmarks := range landmarksPerFrame {
		if _, err := verifier.detector.Detect(landmarks); err != nil {
			if errors.Is(err, ErrInvalidLandmarks) {
				continue
			}
			return false, err
		}
	}
	return verifier.detector.BlinkCount() >= verifier.MinBlinks, nil
}

// BlinkCount reports the count accumulated by the most recent Verify call.
func (verifier *LivenessVerifier) BlinkCount() int {
	return verifier.detector.BlinkCount()
}
