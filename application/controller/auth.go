package controller

import (
	"encoding/hex"
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	auth_usecases "veriface.io/application/usecases/auth"
	server_response "veriface.io/infrastructure/serverResponse"
)

// KeyExchange runs the ECDH handshake that seeds payload encryption for a
// device. The response goes out unencrypted because the shared key does not
// exist on the client until it processes the server public key.
func KeyExchange(ctx *interfaces.ApplicationContext[dto.KeyExchangeDTO]) {
	if ctx.Body.ClientPublicKey == nil {
		apperrors.ClientError(ctx.Ctx, "invalid client public key", nil, nil, ctx.DeviceID)
		return
	}
	serverPublicKey, _, err := auth_usecases.InitiateKeyExchange(ctx.Ctx, ctx.DeviceID, ctx.Body.ClientPublicKey)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.UnEncryptedRespond(ctx.Ctx, http.StatusCreated, "key exchanged", hex.EncodeToString(serverPublicKey), nil, nil)
}
