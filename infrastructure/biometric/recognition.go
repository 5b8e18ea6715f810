package biometric

import (
	"context"
	"image"
	"time"

	"veriface.io/infrastructure/biometric/types"
)

// DefaultCropEdge is the square input geometry embedding models are fed.
const DefaultCropEdge = 160

// RecognitionOrchestrator composes face detection, quality gating, embedding
// extraction and matching into the two recognition paths. It holds no
// per-attempt state and is safe to share across goroutines; the enrolled
// gallery is read-only input and is never mutated here.
type RecognitionOrchestrator struct {
	Detector  types.FaceDetector
	Extractor types.EmbeddingExtractor
	Quality   *QualityAssessor
	Matcher   *FaceMatcher
	CropEdge  int
}

func NewRecognitionOrchestrator(detector types.FaceDetector, extractor types.EmbeddingExtractor, quality *QualityAssessor, matcher *FaceMatcher) *RecognitionOrchestrator {
	return &RecognitionOrchestrator{
		Detector:  detector,
		Extractor: extractor,
		Quality:   quality,
		Matcher:   matcher,
		CropEdge:  DefaultCropEdge,
	}
}

// RecognizeFace runs the single-face path over a full frame. Each stage fails
// with its own typed error so callers can surface one clear reason per
// attempt. The first detected region is the one recognized.
func (orchestrator *RecognitionOrchestrator) RecognizeFace(ctx context.Context, frame image.Image, gallery []types.GalleryEntry) (*types.RecognitionResult, error) {
	startedAt := time.Now()

	outcome, err := orchestrator.Detector.DetectFaces(ctx, frame)
	if err != nil {
		return nil, err
	}
	if !outcome.Detected || len(outcome.Regions) == 0 {
		return nil, ErrNoFaceDetected
	}

	region := outcome.Regions[0]
	candidate, quality, err := orchestrator.resolveRegion(ctx, frame, region, gallery)
	if err != nil {
		return nil, err
	}

	return &types.RecognitionResult{
		Candidate: *candidate,
		Quality:   quality,
		Region:    region,
		LatencyMS: time.Since(startedAt).Milliseconds(),
	}, nil
}

// RecognizeMultipleFaces runs the group-photo path. Every detected face is
// resolved independently and a failure at any per-face stage degrades that
// position to nil instead of aborting the batch, so the result is always
// positionally aligned with the detection order.
func (orchestrator *RecognitionOrchestrator) RecognizeMultipleFaces(ctx context.Context, frame image.Image, gallery []types.GalleryEntry) ([]*types.MatchCandidate, error) {
	outcome, err := orchestrator.Detector.DetectFaces(ctx, frame)
	if err != nil {
		return nil, err
	}
	if !outcome.Detected || len(outcome.Regions) == 0 {
		return nil, ErrNoFaceDetected
	}

	candidates := make([]*types.MatchCandidate, len(outcome.Regions))
	for position, region := range outcome.Regions {
		candidate, _, err := orchestrator.resolveRegion(ctx, frame, region, gallery)
		if err != nil {
			continue
		}
		candidates[position] = candidate
	}
	return candidates, nil
}

// resolveRegion runs crop, quality gate, embedding extraction and matching
// for one detected region.
func (orchestrator *RecognitionOrchestrator) resolveRegion(ctx context.Context, frame image.Image, region types.FaceRegion, gallery []types.GalleryEntry) (*types.MatchCandidate, types.QualityScore, error) {
	crop := CropFace(frame, region)
	if crop == nil {
		return nil, types.QualityScore{}, ErrNoFaceDetected
	}

	quality := orchestrator.Quality.Assess(crop)
	if !quality.Suitable {
		return nil, quality, &InsufficientQualityError{Score: quality}
	}

	edge := orchestrator.CropEdge
	if edge <= 0 {
		edge = DefaultCropEdge
	}
	embedding, err := orchestrator.Extractor.ExtractEmbedding(ctx, ResampleSquare(crop, edge))
	if err != nil {
		return nil, quality, err
	}
	if len(embedding) == 0 {
		return nil, quality, &EmbeddingExtractionError{Err: errEmptyEmbedding}
	}

	candidate := orchestrator.Matcher.FindBestMatch(embedding, gallery)
	if candidate == nil {
		return nil, quality, ErrFaceNotRecognized
	}
	return candidate, quality, nil
}
