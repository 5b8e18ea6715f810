package sms

import (
	"os"

	"veriface.io/infrastructure/network"
)

type SMSServiceType interface {
	SendMessage(phone string, whatsapp bool, msg *string) *string
}

type TermiiMessageResponse struct {
	MessageID *string `json:"message_id"`
	Message   string  `json:"message"`
	Balance   float64 `json:"balance"`
	User      string  `json:"user"`
}

var SMSService SMSServiceType

func InitSMSService() {
	SMSService = &TermiiService{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("TERMII_API_URL"),
		},
		API_KEY: os.Getenv("TERMII_API_KEY"),
	}
}
