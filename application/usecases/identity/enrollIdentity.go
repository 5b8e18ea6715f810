package identity_usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/detector"
	"veriface.io/infrastructure/biometric/embedding"
	"veriface.io/infrastructure/biometric/types"
	fileupload "veriface.io/infrastructure/file_upload"
	file_upload_types "veriface.io/infrastructure/file_upload/types"
	"veriface.io/infrastructure/logger"
)

// EnrollIdentityUseCase registers a person for face attendance. Every
// enrollment image must pass the same detection and quality gates used at
// verification time so the stored vectors are never weaker than the probes
// they will be matched against.
func EnrollIdentityUseCase(ctx any, payload *dto.EnrollIdentityDTO, deviceID string) (*entities.EnrolledIdentity, *string) {
	identityRepo := repository.IdentityRepo()
	if payload.Email != nil {
		email := strings.ToLower(*payload.Email)
		payload.Email = &email
		exists, err := identityRepo.CountDocs(map[string]interface{}{
			"email": email,
		})
		if err != nil {
			apperrors.UnknownError(ctx, err, nil, deviceID)
			return nil, nil
		}
		if exists != 0 {
			apperrors.EntityAlreadyExistsError(ctx, "an identity with this email already exists", deviceID)
			return nil, nil
		}
	}
	if len(payload.Images) > constants.MAX_EMBEDDINGS_PER_IDENTITY {
		apperrors.ClientError(ctx, fmt.Sprintf("an identity can carry at most %d enrollment images", constants.MAX_EMBEDDINGS_PER_IDENTITY), nil, nil, deviceID)
		return nil, nil
	}

	embeddings, err := ExtractEnrollmentEmbeddings(ctx, payload.Images, deviceID)
	if err != nil {
		return nil, nil
	}

	identityID := utils.GenerateUULDString()
	identity, err := identityRepo.CreateOne(context.TODO(), entities.EnrolledIdentity{
		ID:         identityID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Embeddings: embeddings,
		Image:      fmt.Sprintf("identities/%s/profile", identityID),
		Active:     true,
	})
	if err != nil {
		logger.Error("an error occured while enrolling identity", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}

	uploadURL, err := fileupload.FileUploader.GeneratedSignedURL(identity.Image, file_upload_types.SignedURLPermission{
		Write: true,
	})
	if err != nil {
		logger.Error("an error occured while generating url for identity profile image", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil
	}
	return identity, uploadURL
}

// ExtractEnrollmentEmbeddings converts raw enrollment captures into identity
// vectors. Each capture must contain exactly one face that clears the quality
// gate. Failures respond on ctx and return a non-nil error.
func ExtractEnrollmentEmbeddings(ctx any, images []string, deviceID string) ([]types.EmbeddingVector, error) {
	quality := biometric.NewQualityAssessor(0)
	embeddings := make([]types.EmbeddingVector, 0, len(images))
	for position, data := range images {
		frame, err := utils.DecodeBase64Image(data)
		if err != nil {
			apperrors.ClientError(ctx, fmt.Sprintf("image %d is not a valid base64 encoded image", position+1), nil, nil, deviceID)
			return nil, err
		}
		outcome, err := detector.FaceDetectionService.DetectFaces(context.TODO(), frame)
		if err != nil {
			apperrors.ExternalDependencyError(ctx, "veriface-vision", "500", err, deviceID)
			return nil, err
		}
		if !outcome.Detected || outcome.Count == 0 {
			apperrors.ClientError(ctx, fmt.Sprintf("no face was detected in image %d", position+1), nil, nil, deviceID)
			return nil, biometric.ErrNoFaceDetected
		}
		if outcome.Count > 1 {
			apperrors.ClientError(ctx, fmt.Sprintf("image %d contains more than one face", position+1), nil, nil, deviceID)
			return nil, errors.New("multiple faces in enrollment image")
		}

		crop := biometric.CropFace(frame, outcome.Regions[0])
		if crop == nil {
			apperrors.ClientError(ctx, fmt.Sprintf("no face was detected in image %d", position+1), nil, nil, deviceID)
			return nil, biometric.ErrNoFaceDetected
		}
		score := quality.Assess(crop)
		if !score.Suitable {
			apperrors.ClientError(ctx, fmt.Sprintf("image %d was rejected: %s", position+1, score.Reason), nil, &constants.QUALITY_TOO_LOW, deviceID)
			return nil, &biometric.InsufficientQualityError{Score: score}
		}

		vector, err := embedding.EmbeddingService.ExtractEmbedding(context.TODO(), biometric.ResampleSquare(crop, biometric.DefaultCropEdge))
		if err != nil {
			logger.Error("an error occured while extracting enrollment embedding", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "position",
				Data: position,
			})
			apperrors.ExternalDependencyError(ctx, "veriface-vision", "500", err, deviceID)
			return nil, err
		}
		embeddings = append(embeddings, vector)
	}
	return embeddings, nil
}
