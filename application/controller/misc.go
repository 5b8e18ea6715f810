package controller

import (
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/infrastructure/biometric/detector"
	fileupload "veriface.io/infrastructure/file_upload"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

func GeneratedSignedURL(ctx *interfaces.ApplicationContext[dto.GeneratedSignedURLDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	url, err := fileupload.FileUploader.GeneratedSignedURL(ctx.Body.FilePath, ctx.Body.Permission)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "url generated", map[string]any{
		"url":      url,
		"filePath": ctx.Body.FilePath,
	}, nil, nil, &ctx.DeviceID)
}

// ServiceHealth reports per-strategy detector counters alongside the model
// identifiers the engine is pinned to.
func ServiceHealth(ctx *interfaces.ApplicationContext[any]) {
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "service health fetched", map[string]any{
		"detectionStrategies": detector.FaceDetectionService.Stats(),
		"detectionModels":     constants.SUPPORTED_DETECTION_MODELS,
		"embeddingModels":     constants.SUPPORTED_EMBEDDING_MODELS,
	}, nil, nil, &ctx.DeviceID)
}
