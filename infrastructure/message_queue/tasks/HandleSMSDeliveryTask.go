package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"veriface.io/infrastructure/logger"
	mq_types "veriface.io/infrastructure/message_queue/types"
	"veriface.io/infrastructure/messaging/sms"
)

var HandleSMSDeliveryTaskName mq_types.Queues = "send_sms"

type SendSMSPayload struct {
	To       string
	Msg      string
	Whatsapp bool
}

func HandleSMSDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var payload SendSMSPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling sms queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	sms.SMSService.SendMessage(payload.To, payload.Whatsapp, &payload.Msg)
	return nil
}
