package sms

import (
	"encoding/json"
	"fmt"
	"os"

	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

type TermiiService struct {
	Network *network.NetworkController
	API_KEY string
}

// SendMessage delivers a plain notification to a phone number. Returns the
// provider message id on success.
func (ts *TermiiService) SendMessage(phone string, whatsapp bool, msg *string) *string {
	if os.Getenv("ENV") != "production" {
		logger.Info(fmt.Sprintf("skipping sms delivery to %s outside production", phone))
		return nil
	}
	channel := "generic"
	if whatsapp {
		channel = "whatsapp"
	}
	response, statusCode, err := ts.Network.Post("/sms/send", nil, map[string]any{
		"api_key": ts.API_KEY,
		"from":    "VeriFace",
		"to":      phone,
		"sms":     *msg,
		"type":    "plain",
		"channel": channel,
	}, nil, false, nil)
	if err != nil {
		logger.Error("error sending sms", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	var termiiResponse TermiiMessageResponse
	json.Unmarshal(*response, &termiiResponse)
	if *statusCode != 200 {
		logger.Error("request to termii for sms delivery was unsuccessful", logger.LoggerOptions{
			Key:  "statusCode",
			Data: fmt.Sprintf("%d", *statusCode),
		}, logger.LoggerOptions{
			Key:  "data",
			Data: termiiResponse,
		})
		return nil
	}
	logger.Info(fmt.Sprintf("SMS sent to %s", phone), logger.LoggerOptions{
		Key:  "res",
		Data: termiiResponse,
	})
	return termiiResponse.MessageID
}
