package dto

import (
	"crypto/ecdh"
)

type KeyExchangeDTO struct {
	ClientPublicKey *ecdh.PublicKey `json:"clientPubKey"`
}

type PairTerminalDTO struct {
	PairingCode string `json:"pairingCode" validate:"required,len=6,numeric"`
}
