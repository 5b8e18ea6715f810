package identity_usecases

import (
	"fmt"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/infrastructure/logger"
)

// AddIdentityImagesUseCase appends fresh enrollment vectors to an identity.
// Re-enrollment under different lighting improves recall, so vectors
// accumulate up to the cap instead of replacing the originals.
func AddIdentityImagesUseCase(ctx any, payload *dto.AddIdentityImagesDTO, identityID string, deviceID string) bool {
	identityRepo := repository.IdentityRepo()
	identity, err := identityRepo.FindByID(identityID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return false
	}
	if identity == nil {
		apperrors.NotFoundError(ctx, "identity not found", &deviceID)
		return false
	}
	if !identity.Active {
		apperrors.ClientError(ctx, "this identity has been deactivated", nil, nil, deviceID)
		return false
	}
	if len(identity.Embeddings)+len(payload.Images) > constants.MAX_EMBEDDINGS_PER_IDENTITY {
		apperrors.ClientError(ctx, fmt.Sprintf("an identity can carry at most %d enrollment images", constants.MAX_EMBEDDINGS_PER_IDENTITY), nil, nil, deviceID)
		return false
	}

	embeddings, err := ExtractEnrollmentEmbeddings(ctx, payload.Images, deviceID)
	if err != nil {
		return false
	}

	_, err = identityRepo.UpdatePartialByID(identityID, map[string]any{
		"embeddings": append(identity.Embeddings, embeddings...),
	})
	if err != nil {
		logger.Error("an error occured while appending identity embeddings", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "identityID",
			Data: identityID,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return false
	}
	return true
}
