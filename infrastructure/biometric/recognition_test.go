package biometric

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

type stubDetector struct {
	outcome types.DetectionOutcome
	err     error
}

func (s *stubDetector) DetectFaces(ctx context.Context, img image.Image) (types.DetectionOutcome, error) {
	return s.outcome, s.err
}

type stubExtractor struct {
	vector types.EmbeddingVector
	err    error
	calls  int
}

func (s *stubExtractor) ExtractEmbedding(ctx context.Context, face image.Image) (types.EmbeddingVector, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func unitVector(dim, axis int) types.EmbeddingVector {
	vector := make(types.EmbeddingVector, dim)
	vector[axis] = 1
	return vector
}

func singleFaceOutcome(region types.FaceRegion) types.DetectionOutcome {
	return types.DetectionOutcome{
		Detected:    true,
		Count:       1,
		Regions:     []types.FaceRegion{region},
		Confidences: []float64{0.99},
	}
}

func TestRecognizeFace(t *testing.T) {
	frame := uniformImage(480, 480, 128)
	region := types.FaceRegion{X: 0, Y: 0, Width: 480, Height: 480}
	gallery := []types.GalleryEntry{
		{Identity: "U1", Vectors: []types.EmbeddingVector{unitVector(128, 0)}},
	}

	tests := []struct {
		name         string
		detector     types.FaceDetector
		extractor    types.EmbeddingExtractor
		frame        image.Image
		wantIdentity string
		wantErr      error
		wantQualErr  bool
		wantEmbErr   bool
	}{
		{
			name:         "enrolled face is recognized",
			detector:     &stubDetector{outcome: singleFaceOutcome(region)},
			extractor:    &stubExtractor{vector: unitVector(128, 0)},
			frame:        frame,
			wantIdentity: "U1",
		},
		{
			name:      "no face detected",
			detector:  &stubDetector{outcome: types.DetectionOutcome{}},
			extractor: &stubExtractor{vector: unitVector(128, 0)},
			frame:     frame,
			wantErr:   ErrNoFaceDetected,
		},
		{
			name:      "detector failure propagates",
			detector:  &stubDetector{err: errors.New("detector offline")},
			extractor: &stubExtractor{vector: unitVector(128, 0)},
			frame:     frame,
			wantErr:   nil,
		},
		{
			name:        "dark crop fails the quality gate",
			detector:    &stubDetector{outcome: singleFaceOutcome(region)},
			extractor:   &stubExtractor{vector: unitVector(128, 0)},
			frame:       uniformImage(480, 480, 0),
			wantQualErr: true,
		},
		{
			name:       "embedding failure propagates",
			detector:   &stubDetector{outcome: singleFaceOutcome(region)},
			extractor:  &stubExtractor{err: &EmbeddingExtractionError{Model: "facenet", Err: errors.New("model crashed")}},
			frame:      frame,
			wantEmbErr: true,
		},
		{
			name:       "empty embedding is an extraction failure",
			detector:   &stubDetector{outcome: singleFaceOutcome(region)},
			extractor:  &stubExtractor{vector: types.EmbeddingVector{}},
			frame:      frame,
			wantEmbErr: true,
		},
		{
			name:      "unenrolled face is not recognized",
			detector:  &stubDetector{outcome: singleFaceOutcome(region)},
			extractor: &stubExtractor{vector: unitVector(128, 1)},
			frame:     frame,
			wantErr:   ErrFaceNotRecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orchestrator := NewRecognitionOrchestrator(tt.detector, tt.extractor, NewQualityAssessor(0), NewFaceMatcher(0.45))
			result, err := orchestrator.RecognizeFace(context.Background(), tt.frame, gallery)

			if tt.wantIdentity != "" {
				if err != nil {
					t.Fatalf("RecognizeFace() unexpected error = %v", err)
				}
				if result.Candidate.Identity != tt.wantIdentity {
					t.Errorf("RecognizeFace() identity = %s, want %s", result.Candidate.Identity, tt.wantIdentity)
				}
				if result.Candidate.Similarity < 0.99 {
					t.Errorf("RecognizeFace() similarity = %v, want ~1.0", result.Candidate.Similarity)
				}
				if !result.Quality.Suitable {
					t.Errorf("RecognizeFace() quality not suitable: %+v", result.Quality)
				}
				if result.Region != region {
					t.Errorf("RecognizeFace() region = %+v, want %+v", result.Region, region)
				}
				if result.LatencyMS < 0 {
					t.Errorf("RecognizeFace() latency = %d, want non-negative", result.LatencyMS)
				}
				return
			}

			if err == nil {
				t.Fatal("RecognizeFace() expected error but got none")
			}
			if tt.wantQualErr {
				var qualityErr *InsufficientQualityError
				if !errors.As(err, &qualityErr) {
					t.Errorf("RecognizeFace() error = %v, want InsufficientQualityError", err)
				}
				return
			}
			if tt.wantEmbErr {
				var embeddingErr *EmbeddingExtractionError
				if !errors.As(err, &embeddingErr) {
					t.Errorf("RecognizeFace() error = %v, want EmbeddingExtractionError", err)
				}
				return
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("RecognizeFace() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecognizeMultipleFaces(t *testing.T) {
	// Three faces side by side. The middle crop is pitch black so it fails
	// the quality gate while its neighbours resolve normally.
	frame := image.NewRGBA(image.Rect(0, 0, 1440, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 1440; x++ {
			if x >= 480 && x < 960 {
				frame.Set(x, y, color.RGBA{A: 255})
			} else {
				frame.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
			}
		}
	}

	outcome := types.DetectionOutcome{
		Detected: true,
		Count:    3,
		Regions: []types.FaceRegion{
			{X: 0, Y: 0, Width: 480, Height: 480},
			{X: 480, Y: 0, Width: 480, Height: 480},
			{X: 960, Y: 0, Width: 480, Height: 480},
		},
		Confidences: []float64{0.98, 0.97, 0.96},
	}
	gallery := []types.GalleryEntry{
		{Identity: "U1", Vectors: []types.EmbeddingVector{unitVector(128, 0)}},
	}

	orchestrator := NewRecognitionOrchestrator(
		&stubDetector{outcome: outcome},
		&stubExtractor{vector: unitVector(128, 0)},
		NewQualityAssessor(0),
		NewFaceMatcher(0.45),
	)

	candidates, err := orchestrator.RecognizeMultipleFaces(context.Background(), frame, gallery)
	if err != nil {
		t.Fatalf("RecognizeMultipleFaces() unexpected error = %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("RecognizeMultipleFaces() returned %d positions, want 3", len(candidates))
	}
	if candidates[0] == nil || candidates[0].Identity != "U1" {
		t.Errorf("RecognizeMultipleFaces() position 0 = %+v, want U1", candidates[0])
	}
	if candidates[1] != nil {
		t.Errorf("RecognizeMultipleFaces() position 1 = %+v, want nil for the failed face", candidates[1])
	}
	if candidates[2] == nil || candidates[2].Identity != "U1" {
		t.Errorf("RecognizeMultipleFaces() position 2 = %+v, want U1", candidates[2])
	}
}

func TestRecognizeMultipleFacesNoFaces(t *testing.T) {
	orchestrator := NewRecognitionOrchestrator(
		&stubDetector{outcome: types.DetectionOutcome{}},
		&stubExtractor{vector: unitVector(128, 0)},
		NewQualityAssessor(0),
		NewFaceMatcher(0),
	)
	_, err := orchestrator.RecognizeMultipleFaces(context.Background(), uniformImage(64, 64, 128), nil)
	if !errors.Is(err, ErrNoFaceDetected) {
		t.Errorf("RecognizeMultipleFaces() error = %v, want ErrNoFaceDetected", err)
	}
}
