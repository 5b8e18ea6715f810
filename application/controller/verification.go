package controller

import (
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	verification_usecases "veriface.io/application/usecases/verification"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

func StartVerificationSession(ctx *interfaces.ApplicationContext[any]) {
	session := verification_usecases.StartVerificationSessionUseCase(ctx.Ctx, ctx.GetStringContextData("TerminalID"), ctx.DeviceID)
	if session == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "verification session started", session, nil, nil, &ctx.DeviceID)
}

func RecognizeFace(ctx *interfaces.ApplicationContext[dto.RecognizeFaceDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	session, identity := verification_usecases.RecognizeFaceUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("TerminalID"), ctx.DeviceID)
	if session == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face recognized", map[string]any{
		"session": session,
		"identity": map[string]any{
			"id":   identity.ID,
			"name": identity.DisplayName(),
		},
	}, nil, nil, &ctx.DeviceID)
}

func VerifyLiveness(ctx *interfaces.ApplicationContext[dto.VerifyLivenessDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	session, passed := verification_usecases.VerifyLivenessUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("TerminalID"), ctx.DeviceID)
	if session == nil {
		return
	}
	if !passed {
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "blink sequence not detected. capture a fresh sequence and try again.", session, nil, &constants.LIVENESS_RETRY, &ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness verified", session, nil, nil, &ctx.DeviceID)
}

func RecordAttendance(ctx *interfaces.ApplicationContext[dto.RecordAttendanceDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	record, evidenceURL := verification_usecases.RecordAttendanceUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("TerminalID"), ctx.DeviceID)
	if record == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "attendance recorded", map[string]any{
		"record":      record,
		"evidenceURL": evidenceURL,
	}, nil, nil, &ctx.DeviceID)
}

func RecognizeGroup(ctx *interfaces.ApplicationContext[dto.RecognizeGroupDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	matches := verification_usecases.RecognizeGroupUseCase(ctx.Ctx, ctx.Body, ctx.DeviceID)
	if matches == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "group frame processed", matches, nil, nil, &ctx.DeviceID)
}
