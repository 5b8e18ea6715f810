package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"veriface.io/application/repository"
	"veriface.io/infrastructure/logger"
	mq_types "veriface.io/infrastructure/message_queue/types"
	"veriface.io/infrastructure/messaging/emails"
	"veriface.io/infrastructure/messaging/sms"
)

var HandleAttendanceNotificationTaskName mq_types.Queues = "attendance_notification"

type AttendanceNotificationPayload struct {
	RecordID string
}

func HandleAttendanceNotificationTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceNotificationPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling attendance notification payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	recordRepo := repository.AttendanceRecordRepo()
	record, err := recordRepo.FindByID(payload.RecordID)
	if err != nil {
		logger.Error("an error occured while fetching record for attendance notification", logger.LoggerOptions{
			Key:  "err",
			Data: err.Error(),
		}, logger.LoggerOptions{
			Key:  "payload",
			Data: payload,
		})
		return err
	}
	if record == nil {
		logger.Warning("attendance notification requested for a record that no longer exists", logger.LoggerOptions{
			Key:  "recordID",
			Data: payload.RecordID,
		})
		return nil
	}
	identityRepo := repository.IdentityRepo()
	identity, err := identityRepo.FindByID(record.IdentityID)
	if err != nil {
		logger.Error("an error occured while fetching identity for attendance notification", logger.LoggerOptions{
			Key:  "err",
			Data: err.Error(),
		}, logger.LoggerOptions{
			Key:  "recordID",
			Data: payload.RecordID,
		})
		return err
	}
	if identity == nil {
		return nil
	}
	terminalRepo := repository.TerminalRepo()
	terminal, err := terminalRepo.FindByID(record.TerminalID)
	if err != nil {
		logger.Error("an error occured while fetching terminal for attendance notification", logger.LoggerOptions{
			Key:  "err",
			Data: err.Error(),
		}, logger.LoggerOptions{
			Key:  "recordID",
			Data: payload.RecordID,
		})
		return err
	}
	location := "an unknown location"
	if terminal != nil {
		location = terminal.Location
	}

	if identity.Email != nil {
		emails.EmailService.SendEmail(*identity.Email, "Your attendance has been recorded", "attendance_recorded", map[string]any{
			"FIRST_NAME": identity.FirstName,
			"LOCATION":   location,
			"DATE":       record.Date,
			"TIME":       record.Time,
		})
		return nil
	}
	if identity.Phone != nil {
		msg := fmt.Sprintf("Hi %s, your attendance was recorded at %s on %s by %s.", identity.FirstName, record.Time, record.Date, location)
		sms.SMSService.SendMessage(*identity.Phone, false, &msg)
	}
	return nil
}
