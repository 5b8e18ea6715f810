package biometric

import (
	"errors"
	"fmt"

	"veriface.io/infrastructure/biometric/types"
)

// Stable codes carried by InvalidAttendanceRecordError so callers can tell a
// broken business rule apart from bad input.
const (
	CodeLivenessNotVerified = "LIVENESS_NOT_VERIFIED"
	CodeSessionExpired      = "SESSION_EXPIRED"
	CodeInvalidTransition   = "INVALID_SESSION_TRANSITION"
	CodeMalformedRecord     = "MALFORMED_RECORD"
)

var (
	// ErrNoFaceDetected is returned when every detection strategy yields
	// zero faces for a frame.
	ErrNoFaceDetected = errors.New("no face detected in image")

	// ErrFaceNotRecognized is returned when no enrolled identity clears the
	// similarity threshold. Expected and recoverable, not a bug.
	ErrFaceNotRecognized = errors.New("face does not match any enrolled identity")

	// ErrInvalidLandmarks is returned when a frame carries fewer landmark
	// points than the blink detector needs.
	ErrInvalidLandmarks = errors.New("landmark set must contain at least 468 points")

	// ErrSequenceLengthMismatch is returned when the frame and landmark
	// sequences handed to the liveness verifier differ in length.
	ErrSequenceLengthMismatch = errors.New("frames and landmark sequences differ in length")

	errEmptyEmbedding = errors.New("extractor returned an empty vector")
)

// InsufficientQualityError is returned when a cropped face fails the quality
// gate. It carries the full score so callers can surface which sub-metric
// dragged the image down.
type InsufficientQualityError struct {
	Score types.QualityScore
}

func (e *InsufficientQualityError) Error() string {
	return fmt.Sprintf("face image quality insufficient (%.2f): %s", e.Score.Overall, e.Score.Reason)
}

// EmbeddingExtractionError wraps a failure from the external embedding
// service with the model that produced it. Never swallowed; a silent failure
// here would corrupt identity decisions.
type EmbeddingExtractionError struct {
	Model string
	Err   error
}

func (e *EmbeddingExtractionError) Error() string {
	model := e.Model
	if model == "" {
		model = "embedding model"
	}
	if e.Err == nil {
		return fmt.Sprintf("embedding extraction with %s returned no vector", model)
	}
	return fmt.Sprintf("embedding extraction with %s failed: %s", model, e.Err.Error())
}

func (e *EmbeddingExtractionError) Unwrap() error {
	return e.Err
}

// InvalidAttendanceRecordError is raised when record creation is requested in
// a state the workflow forbids. Always fatal to the call, never retried.
type InvalidAttendanceRecordError struct {
	Code    string
	Message string
}

func (e *InvalidAttendanceRecordError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRecoverable reports whether err is one of the expected, user-facing
// verification outcomes (no face, unrecognized face, poor quality) as opposed
// to an infrastructure failure.
func IsRecoverable(err error) bool {
	if errors.Is(err, ErrNoFaceDetected) || errors.Is(err, ErrFaceNotRecognized) {
		return true
	}
	var qualityErr *InsufficientQualityError
	return errors.As(err, &qualityErr)
}
