package controller

import (
	"net/http"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	fileupload "veriface.io/infrastructure/file_upload"
	"veriface.io/infrastructure/file_upload/types"
	"veriface.io/infrastructure/logger"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

// FetchAttendanceRecords is the admin report query. Date filters compare the
// stored YYYY-MM-DD strings, so range bounds behave like calendar days.
func FetchAttendanceRecords(ctx *interfaces.ApplicationContext[dto.FetchAttendanceRecordsDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	filter := map[string]interface{}{
		"deletedAt": nil,
	}
	if ctx.Body.IdentityID != nil {
		filter["identityID"] = *ctx.Body.IdentityID
	}
	if ctx.Body.TerminalID != nil {
		filter["terminalID"] = *ctx.Body.TerminalID
	}
	if ctx.Body.Date != nil {
		filter["date"] = *ctx.Body.Date
	} else {
		dateRange := map[string]any{}
		if ctx.Body.DateFrom != nil {
			dateRange["$gte"] = *ctx.Body.DateFrom
		}
		if ctx.Body.DateTo != nil {
			dateRange["$lte"] = *ctx.Body.DateTo
		}
		if len(dateRange) != 0 {
			filter["date"] = dateRange
		}
	}
	sort := int(ctx.Body.Sort)
	if sort == 0 {
		sort = -1
	}
	recordRepo := repository.AttendanceRecordRepo()
	records, err := recordRepo.FindManyPaginated(filter, ctx.Body.PageSize, ctx.Body.LastID, sort)
	if err != nil {
		logger.Error("an error occured while fetching attendance records", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	totalCount, err := recordRepo.CountDocs(filter)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance records fetched", map[string]any{
		"records":    records,
		"totalCount": totalCount,
	}, nil, nil, &ctx.DeviceID)
}

func FetchAttendanceRecordByID(ctx *interfaces.ApplicationContext[any]) {
	recordRepo := repository.AttendanceRecordRepo()
	record, err := recordRepo.FindByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if record == nil {
		apperrors.NotFoundError(ctx.Ctx, "this attendance record does not exist", &ctx.DeviceID)
		return
	}
	var evidenceURL *string
	if record.EvidenceKey != nil {
		exists, err := fileupload.FileUploader.CheckFileExists(*record.EvidenceKey)
		if err != nil {
			logger.Error("an error occured while checking attendance evidence frame", logger.LoggerOptions{
				Key:  "recordID",
				Data: record.ID,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		} else if exists {
			evidenceURL, _ = fileupload.FileUploader.GeneratedSignedURL(*record.EvidenceKey, types.SignedURLPermission{
				Read: true,
			})
		}
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance record fetched", map[string]any{
		"record":      record,
		"evidenceURL": evidenceURL,
	}, nil, nil, &ctx.DeviceID)
}

// VoidAttendanceRecord soft deletes a record so reports exclude it while the
// row survives for audit. Voided records never come back.
func VoidAttendanceRecord(ctx *interfaces.ApplicationContext[dto.VoidAttendanceRecordDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	recordRepo := repository.AttendanceRecordRepo()
	updated, err := recordRepo.UpdatePartialByID(ctx.GetStringParameter("id"), map[string]any{
		"deletedAt":     time.Now(),
		"deletedReason": ctx.Body.Reason,
	})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "this attendance record does not exist", &ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance record voided", nil, nil, nil, &ctx.DeviceID)
}
