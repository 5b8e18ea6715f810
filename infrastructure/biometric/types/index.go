package types

import (
	"context"
	"image"
)

// Point is a single facial landmark in normalized or pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FaceRegion is an axis-aligned bounding box in pixel coordinates. Regions
// produced by a detector always lie within the bounds of the source image.
type FaceRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectionOutcome is the result of running a bounding-box detector over a
// full frame. Count == len(Regions) == len(Confidences) always holds.
type DetectionOutcome struct {
	Detected    bool         `json:"detected"`
	Count       int          `json:"count"`
	Regions     []FaceRegion `json:"regions"`
	Confidences []float64    `json:"confidences"`
}

// EmbeddingVector is a fixed-length face feature vector. Vectors are
// L2-normalized when they are created and never mutated afterwards.
type EmbeddingVector []float64

// QualityScore carries the four sub-scores and the overall suitability
// verdict for a cropped face image. A fresh value is produced per assessment.
type QualityScore struct {
	Overall    float64 `json:"overall"`
	Resolution float64 `json:"resolution"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Sharpness  float64 `json:"sharpness"`
	Suitable   bool    `json:"suitable"`
	Reason     string  `json:"reason,omitempty"`
}

// MatchCandidate is the best enrolled identity for a probe embedding.
type MatchCandidate struct {
	Identity   string  `json:"identity"`
	Similarity float64 `json:"similarity"`
}

// GalleryEntry pairs an identity key with its enrolled embeddings. The
// matcher consumes an ordered slice of entries because ties between equal
// similarities are broken by insertion order, which a map would not preserve.
type GalleryEntry struct {
	Identity string
	Vectors  []EmbeddingVector
}

// BlinkObservation is an immutable snapshot returned for one frame.
// BlinkCount reflects the detector's cumulative state at observation time.
type BlinkObservation struct {
	IsBlinking bool    `json:"isBlinking"`
	EARAverage float64 `json:"earAverage"`
	EARLeft    float64 `json:"earLeft"`
	EARRight   float64 `json:"earRight"`
	BlinkCount int     `json:"blinkCount"`
}

// RecognitionResult is the output of the single-face recognition path.
type RecognitionResult struct {
	Candidate MatchCandidate `json:"candidate"`
	Quality   QualityScore   `json:"quality"`
	Region    FaceRegion     `json:"region"`
	LatencyMS int64          `json:"latencyMS"`
}

// FaceDetector locates faces in a full frame. An implementation may be backed
// by several underlying strategies tried in order; callers depend only on the
// DetectionOutcome contract, never on which strategy produced it.
type FaceDetector interface {
	DetectFaces(ctx context.Context, img image.Image) (DetectionOutcome, error)
}

// LandmarkExtractor returns the dense landmark mesh for the most prominent
// face in a frame. Consumers require at least 468 points per frame.
type LandmarkExtractor interface {
	ExtractLandmarks(ctx context.Context, img image.Image) ([]Point, error)
}

// EmbeddingExtractor produces an identity embedding for a cropped face.
type EmbeddingExtractor interface {
	ExtractEmbedding(ctx context.Context, face image.Image) (EmbeddingVector, error)
}

// Wire contract for the vision sidecar.

type VisionDetectRequest struct {
	Image string `json:"image"`
	Model string `json:"model,omitempty"`
}

type VisionFace struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

type VisionDetectResponse struct {
	Success bool         `json:"success"`
	Faces   []VisionFace `json:"faces"`
	Error   *string      `json:"error"`
}

type VisionLandmarksRequest struct {
	Image string `json:"image"`
}

type VisionLandmarksResponse struct {
	Success   bool    `json:"success"`
	Landmarks []Point `json:"landmarks"`
	Error     *string `json:"error"`
}

type VisionEmbeddingRequest struct {
	Image string `json:"image"`
}

type VisionEmbeddingResponse struct {
	Success   bool      `json:"success"`
	Embedding []float64 `json:"embedding"`
	Model     string    `json:"model"`
	Error     *string   `json:"error"`
}
