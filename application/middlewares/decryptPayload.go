package middlewares

import (
	"encoding/hex"
	"fmt"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/application/utils"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

func DecryptPayloadMiddleware(ctx *interfaces.ApplicationContext[string]) []byte {
	if ctx.Body == nil || *ctx.Body == "" {
		return nil
	}
	sharedKey := cache.Cache.FindOne(fmt.Sprintf("%s-key", ctx.DeviceID))
	if sharedKey == nil {
		apperrors.ClientError(ctx.Ctx, "expired encryption key", nil, nil, ctx.DeviceID)
		return nil
	}

	decryptedKey, err := cryptography.DecryptData(*sharedKey, nil)
	if err != nil {
		logger.Error("an error occured while decrypting terminal payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	result, err := cryptography.DecryptData(*ctx.Body, utils.GetStringPointer(hex.EncodeToString(decryptedKey)))
	if err != nil {
		logger.Error("an error occured while decrypting terminal payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	return result
}
