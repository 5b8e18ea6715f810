package controller

import (
	"net/http"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	identity_usecases "veriface.io/application/usecases/identity"
	fileupload "veriface.io/infrastructure/file_upload"
	"veriface.io/infrastructure/file_upload/types"
	"veriface.io/infrastructure/logger"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

// EnrollIdentity registers a person for attendance matching. The returned
// url accepts a one-time upload of the profile photo shown on admin surfaces;
// matching itself runs on the embeddings extracted here, never on the upload.
func EnrollIdentity(ctx *interfaces.ApplicationContext[dto.EnrollIdentityDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	identity, uploadURL := identity_usecases.EnrollIdentityUseCase(ctx.Ctx, ctx.Body, ctx.DeviceID)
	if identity == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "identity enrolled", map[string]any{
		"identity": identity,
		"url":      uploadURL,
	}, nil, nil, &ctx.DeviceID)
}

func AddIdentityImages(ctx *interfaces.ApplicationContext[dto.AddIdentityImagesDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	success := identity_usecases.AddIdentityImagesUseCase(ctx.Ctx, ctx.Body, ctx.GetStringParameter("id"), ctx.DeviceID)
	if !success {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "enrollment images added", nil, nil, nil, &ctx.DeviceID)
}

func FetchIdentities(ctx *interfaces.ApplicationContext[dto.FetchIdentitiesDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	filter := map[string]interface{}{
		"deletedAt": nil,
	}
	if ctx.Body.Active != nil {
		filter["active"] = *ctx.Body.Active
	}
	sort := int(ctx.Body.Sort)
	if sort == 0 {
		sort = -1
	}
	identityRepo := repository.IdentityRepo()
	identities, err := identityRepo.FindManyPaginated(filter, ctx.Body.PageSize, ctx.Body.LastID, sort)
	if err != nil {
		logger.Error("an error occured while fetching identities", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	totalCount, err := identityRepo.CountDocs(filter)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "identities fetched", map[string]any{
		"identities": identities,
		"totalCount": totalCount,
	}, nil, nil, &ctx.DeviceID)
}

func FetchIdentityByID(ctx *interfaces.ApplicationContext[any]) {
	identityRepo := repository.IdentityRepo()
	identity, err := identityRepo.FindByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if identity == nil {
		apperrors.NotFoundError(ctx.Ctx, "this identity does not exist", &ctx.DeviceID)
		return
	}
	var imageURL *string
	exists, err := fileupload.FileUploader.CheckFileExists(identity.Image)
	if err != nil {
		logger.Error("an error occured while checking identity profile image", logger.LoggerOptions{
			Key:  "identityID",
			Data: identity.ID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	} else if exists {
		imageURL, _ = fileupload.FileUploader.GeneratedSignedURL(identity.Image, types.SignedURLPermission{
			Read: true,
		})
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "identity fetched", map[string]any{
		"identity": identity,
		"imageURL": imageURL,
	}, nil, nil, &ctx.DeviceID)
}

// DeactivateIdentity pulls a person out of the matching gallery and clears
// their stored profile photo. Embeddings stay on the record so attendance
// history keeps its subject.
func DeactivateIdentity(ctx *interfaces.ApplicationContext[dto.DeactivateIdentityDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	identityRepo := repository.IdentityRepo()
	identity, err := identityRepo.FindByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if identity == nil {
		apperrors.NotFoundError(ctx.Ctx, "this identity does not exist", &ctx.DeviceID)
		return
	}
	reason := "deactivated by admin"
	if ctx.Body.Reason != nil {
		reason = *ctx.Body.Reason
	}
	_, err = identityRepo.UpdatePartialByID(identity.ID, map[string]any{
		"active":        false,
		"deletedAt":     time.Now(),
		"deletedReason": reason,
	})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	err = fileupload.FileUploader.DeleteFile(identity.Image)
	if err != nil {
		logger.Error("an error occured while deleting identity profile image", logger.LoggerOptions{
			Key:  "filePath",
			Data: identity.Image,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "identity deactivated", nil, nil, nil, &ctx.DeviceID)
}
