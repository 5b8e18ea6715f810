package detector

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"time"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// VisionFaceDetector runs bounding-box detection on the vision sidecar.
// Model selects which detector family the sidecar uses for the request.
type VisionFaceDetector struct {
	Model   string
	Network *network.NetworkController
}

func (detector *VisionFaceDetector) Name() string {
	return detector.Model
}

func (detector *VisionFaceDetector) DetectFaces(ctx context.Context, img image.Image) (types.DetectionOutcome, error) {
	encoded, err := utils.EncodeImageBase64(img)
	if err != nil {
		return types.DetectionOutcome{}, err
	}
	requestBody := types.VisionDetectRequest{
		Image: encoded,
		Model: detector.Model,
	}

	response, statusCode, err := detector.Network.Post("/detect-faces", &map[string]string{}, requestBody, nil, false, requestBudget(ctx))
	if err != nil {
		logger.Error("error performing face detection", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "model",
			Data: detector.Model,
		})
		return types.DetectionOutcome{}, err
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("face detection failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "model",
			Data: detector.Model,
		})
		return types.DetectionOutcome{}, errors.New("face detection request was unsuccessful")
	}

	var result types.VisionDetectResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face detection response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return types.DetectionOutcome{}, err
	}
	if !result.Success {
		return types.DetectionOutcome{}, errors.New(parseServiceError(result.Error, "face detection failed"))
	}

	outcome := types.DetectionOutcome{
		Detected: len(result.Faces) > 0,
		Count:    len(result.Faces),
	}
	for _, face := range result.Faces {
		outcome.Regions = append(outcome.Regions, types.FaceRegion{
			X:      face.X,
			Y:      face.Y,
			Width:  face.Width,
			Height: face.Height,
		})
		outcome.Confidences = append(outcome.Confidences, face.Confidence)
	}
	return outcome, nil
}

// VisionLandmarkExtractor fetches the dense face mesh for the most prominent
// face in a frame.
type VisionLandmarkExtractor struct {
	Network *network.NetworkController
}

func (extractor *VisionLandmarkExtractor) ExtractLandmarks(ctx context.Context, img image.Image) ([]types.Point, error) {
	encoded, err := utils.EncodeImageBase64(img)
	if err != nil {
		return nil, err
	}
	requestBody := types.VisionLandmarksRequest{
		Image: encoded,
	}

	response, statusCode, err := extractor.Network.Post("/extract-landmarks", &map[string]string{}, requestBody, nil, false, requestBudget(ctx))
	if err != nil {
		logger.Error("error extracting face landmarks", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("landmark extraction failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, errors.New("landmark extraction request was unsuccessful")
	}

	var result types.VisionLandmarksResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling landmark response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !result.Success {
		return nil, errors.New(parseServiceError(result.Error, "landmark extraction failed"))
	}
	return result.Landmarks, nil
}

// requestBudget converts a context deadline into the per-request timeout the
// network controller understands.
func requestBudget(ctx context.Context) *time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	remaining := time.Until(deadline)
	return &remaining
}

func parseServiceError(serviceError *string, fallback string) string {
	if serviceError != nil && *serviceError != "" {
		return *serviceError
	}
	return fallback
}
