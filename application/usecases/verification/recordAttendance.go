package verification_usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/database/repository/cache"
	fileupload "veriface.io/infrastructure/file_upload"
	file_upload_types "veriface.io/infrastructure/file_upload/types"
	"veriface.io/infrastructure/logger"
	messagequeue "veriface.io/infrastructure/message_queue"
	queue_tasks "veriface.io/infrastructure/message_queue/tasks"
	mq_types "veriface.io/infrastructure/message_queue/types"
)

// RecordAttendanceUseCase finalizes a fully verified session into a durable
// attendance record. One record per identity per calendar day; a second
// attempt surfaces the duplicate instead of creating another row.
func RecordAttendanceUseCase(ctx any, payload *dto.RecordAttendanceDTO, terminalID string, deviceID string) (*entities.AttendanceRecord, *string) {
	session := fetchSession(ctx, payload.SessionID, terminalID, deviceID)
	if session == nil {
		return nil, nil
	}

	now := time.Now()
	dailySetKey := fmt.Sprintf("attendance-%s", now.Format(time.DateOnly))
	if session.RecognizedIdentityID != nil {
		// set membership short-circuits repeat attempts; the datastore count
		// stays authoritative.
		if cache.Cache.DoesItemExistInSet(dailySetKey, *session.RecognizedIdentityID) {
			apperrors.ClientError(ctx, "attendance has already been recorded for this identity today", nil, &constants.ATTENDANCE_ALREADY_RECORDED, deviceID)
			return nil, nil
		}
		recordRepo := repository.AttendanceRecordRepo()
		duplicates, err := recordRepo.CountDocs(map[string]interface{}{
			"identityID": *session.RecognizedIdentityID,
			"date":       now.Format(time.DateOnly),
		})
		if err != nil {
			apperrors.UnknownError(ctx, err, nil, deviceID)
			return nil, nil
		}
		if duplicates != 0 {
			apperrors.ClientError(ctx, "attendance has already been recorded for this identity today", nil, &constants.ATTENDANCE_ALREADY_RECORDED, deviceID)
			return nil, nil
		}
	}

	record, err := attendanceGate.BuildRecord(session, now)
	if err != nil {
		respondGateError(ctx, err, deviceID)
		return nil, nil
	}
	record.ID = utils.GenerateUULDString()
	record.EvidenceKey = utils.GetStringPointer(evidenceFilePath(record.ID))

	recordRepo := repository.AttendanceRecordRepo()
	created, err := recordRepo.CreateOne(context.TODO(), *record)
	if err != nil {
		logger.Error("an error occured while persisting attendance record", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: session.ID,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}
	cache.Cache.DeleteOne(sessionCacheKey(session.ID))
	cache.Cache.CreateInSet(dailySetKey, created.IdentityID, time.Hour*25)
	logger.Info("attendance recorded", logger.LoggerOptions{
		Key:  "recordID",
		Data: created.ID,
	}, logger.LoggerOptions{
		Key:  "terminalID",
		Data: created.TerminalID,
	}, logger.LoggerOptions{
		Key:  "recordedToday",
		Data: cache.Cache.CountSetMembers(dailySetKey),
	})

	evidenceURL, err := fileupload.FileUploader.GeneratedSignedURL(*created.EvidenceKey, file_upload_types.SignedURLPermission{
		Write: true,
	})
	if err != nil {
		logger.Error("an error occured while generating evidence upload url", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "recordID",
			Data: created.ID,
		})
	}

	notificationPayload, err := json.Marshal(queue_tasks.AttendanceNotificationPayload{
		RecordID: created.ID,
	})
	if err == nil {
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleAttendanceNotificationTaskName,
			Payload:  notificationPayload,
			Priority: mq_types.Medium,
		})
	}
	return created, evidenceURL
}

func evidenceFilePath(recordID string) string {
	return fmt.Sprintf("attendance/%s/evidence", recordID)
}
