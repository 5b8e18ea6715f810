package biometric

import (
	"errors"
	"image"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

func makeFrames(count int) []image.Image {
	frames := make([]image.Image, count)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return frames
}

func TestNewLivenessVerifier(t *testing.T) {
	tests := []struct {
		name      string
		minBlinks int
		wantErr   bool
	}{
		{name: "zero blinks rejected", minBlinks: 0, wantErr: true},
		{name: "negative blinks rejected", minBlinks: -2, wantErr: true},
		{name: "single blink accepted", minBlinks: 1},
		{name: "default requirement accepted", minBlinks: DefaultMinBlinks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, err := NewLivenessVerifier(tt.minBlinks, 0)
			if tt.wantErr {
				if err == nil {
					t.Error("NewLivenessVerifier() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
			}
			if verifier.MinBlinks != tt.minBlinks {
				t.Errorf("NewLivenessVerifier() MinBlinks = %d, want %d", verifier.MinBlinks, tt.minBlinks)
			}
		})
	}
}

func TestVerifyLengthMismatch(t *testing.T) {
	verifier, err := NewLivenessVerifier(3, 0)
	if err != nil {
		t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
	}

	landmarks := [][]types.Point{openEyes(), closedEyes(), openEyes()}
	_, err = verifier.Verify(makeFrames(5), landmarks)
	if !errors.Is(err, ErrSequenceLengthMismatch) {
		t.Errorf("Verify() error = %v, want ErrSequenceLengthMismatch", err)
	}
}

func TestVerifyEmptyInput(t *testing.T) {
	verifier, err := NewLivenessVerifier(3, 0)
	if err != nil {
		t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
	}

	passed, err := verifier.Verify(nil, nil)
	if err != nil {
		t.Fatalf("Verify() unexpected error = %v", err)
	}
	if passed {
		t.Error("Verify() passed on empty input")
	}
	if verifier.BlinkCount() != 0 {
		t.Errorf("Verify() touched the detector on empty input, count = %d", verifier.BlinkCount())
	}
}

func TestVerifyBlinkRequirement(t *testing.T) {
	open := openEyes()
	closed := closedEyes()
	threeBlinks := [][]types.Point{open, closed, open, closed, open, closed, open}

	tests := []struct {
		name      string
		minBlinks int
		landmarks [][]types.Point
		want      bool
	}{
		{
			name:      "three blinks meet a three blink requirement",
			minBlinks: 3,
			landmarks: threeBlinks,
			want:      true,
		},
		{
			name:      "three blinks miss a four blink requirement",
			minBlinks: 4,
			landmarks: threeBlinks,
			want:      false,
		},
		{
			name:      "static stare fails",
			minBlinks: 1,
			landmarks: [][]types.Point{open, open, open, open},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, err := NewLivenessVerifier(tt.minBlinks, 0)
			if err != nil {
				t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
			}
			passed, err := verifier.Verify(makeFrames(len(tt.landmarks)), tt.landmarks)
			if err != nil {
				t.Fatalf("Verify() unexpected error = %v", err)
			}
			if passed != tt.want {
				t.Errorf("Verify() = %v, want %v (counted %d)", passed, tt.want, verifier.BlinkCount())
			}
		})
	}
}

func TestVerifySkipsInvalidFrames(t *testing.T) {
	landmarks := [][]types.Point{
		openEyes(),
		make([]types.Point, 5),
		closedEyes(),
		openEyes(),
	}

	verifier, err := NewLivenessVerifier(1, 0)
	if err != nil {
		t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
	}
	passed, err := verifier.Verify(makeFrames(len(landmarks)), landmarks)
	if err != nil {
		t.Fatalf("Verify() unexpected error = %v", err)
	}
	if !passed {
		t.Errorf("Verify() = false, want the malformed frame skipped (counted %d)", verifier.BlinkCount())
	}
}

func TestVerifyResetsBetweenRuns(t *testing.T) {
	verifier, err := NewLivenessVerifier(2, 0)
	if err != nil {
		t.Fatalf("NewLivenessVerifier() unexpected error = %v", err)
	}

	open := openEyes()
	closed := closedEyes()
	twoBlinks := [][]types.Point{open, closed, open, closed, open}
	passed, err := verifier.Verify(makeFrames(len(twoBlinks)), twoBlinks)
	if err != nil || !passed {
		t.Fatalf("Verify() first run = %v, %v; want pass", passed, err)
	}

	stare := [][]types.Point{open, open, open}
	passed, err = verifier.Verify(makeFrames(len(stare)), stare)
	if err != nil {
		t.Fatalf("Verify() unexpected error = %v", err)
	}
	if passed {
		t.Error("Verify() second run inherited blink count from the first")
	}
	if verifier.BlinkCount() != 0 {
		t.Errorf("BlinkCount() after stare = %d, want 0", verifier.BlinkCount())
	}
}
