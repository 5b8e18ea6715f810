package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// VisionEmbeddingExtractor asks the vision sidecar for an identity embedding.
// Vectors are L2-normalized on receipt so similarity downstream is a plain
// dot product regardless of what the model emitted.
type VisionEmbeddingExtractor struct {
	Model   string
	Network *network.NetworkController
}

func (extractor *VisionEmbeddingExtractor) ExtractEmbedding(ctx context.Context, face image.Image) (types.EmbeddingVector, error) {
	encoded, err := utils.EncodeImageBase64(face)
	if err != nil {
		return nil, &biometric.EmbeddingExtractionError{Model: extractor.Model, Err: err}
	}
	requestBody := types.VisionEmbeddingRequest{
		Image: encoded,
	}

	response, statusCode, err := extractor.Network.Post("/extract-embedding", &map[string]string{}, requestBody, nil, false, requestBudget(ctx))
	if err != nil {
		logger.Error("error extracting face embedding", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, &biometric.EmbeddingExtractionError{Model: extractor.Model, Err: err}
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("embedding extraction failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, &biometric.EmbeddingExtractionError{
			Model: extractor.Model,
			Err:   errors.New("embedding request was unsuccessful"),
		}
	}

	var result types.VisionEmbeddingResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling embedding response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, &biometric.EmbeddingExtractionError{Model: extractor.Model, Err: err}
	}

	model := result.Model
	if model == "" {
		model = extractor.Model
	}
	if !result.Success || len(result.Embedding) == 0 {
		var cause error
		if result.Error != nil && *result.Error != "" {
			cause = errors.New(*result.Error)
		}
		return nil, &biometric.EmbeddingExtractionError{Model: model, Err: cause}
	}

	return normalize(result.Embedding), nil
}

// normalize scales a vector to unit length. A zero vector is returned as is;
// the matcher already treats it as similarity 0.
func normalize(vector []float64) types.EmbeddingVector {
	norm := floats.Norm(vector, 2)
	if norm == 0 {
		return types.EmbeddingVector(vector)
	}
	floats.Scale(1/norm, vector)
	return types.EmbeddingVector(vector)
}

func requestBudget(ctx context.Context) *time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	remaining := time.Until(deadline)
	return &remaining
}

var EmbeddingService types.EmbeddingExtractor

func InitialiseEmbeddingService() {
	EmbeddingService = &VisionEmbeddingExtractor{
		Model: "facenet",
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("VERIFACE_VISION_BASE_URL"),
		},
	}
}
