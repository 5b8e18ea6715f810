package terminal_usecases

import (
	"context"
	"encoding/json"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/logger"
	messagequeue "veriface.io/infrastructure/message_queue"
	queue_tasks "veriface.io/infrastructure/message_queue/tasks"
	mq_types "veriface.io/infrastructure/message_queue/types"
)

// RegisterTerminalUseCase provisions a kiosk and mails a pairing code to the
// fleet contact. The plaintext terminal key is returned exactly once; only
// its argon2 hash is persisted.
func RegisterTerminalUseCase(ctx any, payload *dto.RegisterTerminalDTO, deviceID string) (*entities.Terminal, *string) {
	terminalRepo := repository.TerminalRepo()
	exists, err := terminalRepo.CountDocs(map[string]interface{}{
		"name": payload.Name,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "a terminal with this name already exists", deviceID)
		return nil, nil
	}

	terminalKey, err := cryptography.EncryptData([]byte(utils.GenerateUULDString()), nil)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil
	}
	hashedTerminalKey, _ := cryptography.CryptoHahser.HashString(*terminalKey, nil)

	terminal, err := terminalRepo.CreateOne(context.TODO(), entities.Terminal{
		Name:              payload.Name,
		Location:          payload.Location,
		FleetID:           payload.FleetID,
		NotificationEmail: payload.NotificationEmail,
		KeyHash:           string(hashedTerminalKey),
		Active:            true,
	})
	if err != nil {
		logger.Error("an error occured while registering terminal", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "name",
			Data: payload.Name,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}

	pairingCode, err := auth.GenerateOTP(6, terminal.ID)
	if err != nil {
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}
	emailPayload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       payload.NotificationEmail,
		Subject:  "Pair your new VeriFace terminal",
		Template: "terminal_pairing",
		Intent:   "terminal_pair",
		Opts: map[string]any{
			"TERMINAL_NAME": terminal.Name,
			"LOCATION":      terminal.Location,
			"PAIRING_CODE":  *pairingCode,
		},
	})
	if err != nil {
		logger.Error("an error occured while marshalling pairing email payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  emailPayload,
		Priority: mq_types.High,
	})

	return terminal, terminalKey
}
