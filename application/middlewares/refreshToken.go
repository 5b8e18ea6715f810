package middlewares

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt"
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

func RefreshTokenMiddleware(ctx *interfaces.ApplicationContext[any], authToken string) (*interfaces.ApplicationContext[any], bool) {
	if authToken == "" {
		apperrors.AuthenticationError(ctx.Ctx, "missing auth token", ctx.DeviceID)
		return nil, false
	}
	validAccessToken, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired", ctx.DeviceID)
		return nil, false
	}
	if !validAccessToken.Valid {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorised access", ctx.DeviceID)
		return nil, false
	}
	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)
	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to renew terminal session with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: validAccessToken,
		})
		apperrors.AuthenticationError(ctx.Ctx, "unauthorised access", ctx.DeviceID)
		return nil, false
	}

	if ctx.DeviceID == "" {
		logger.Info("device id missing from client")
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access", ctx.DeviceID)
		return nil, false
	}

	if authTokenClaims["deviceID"] != ctx.DeviceID {
		logger.Warning("terminal made request using device id different from that in refresh token", logger.LoggerOptions{
			Key:  "token device id",
			Data: authTokenClaims["deviceID"],
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: ctx.DeviceID,
		})
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access", ctx.DeviceID)
		return nil, false
	}

	deviceIDHash, _ := cryptography.CryptoHahser.HashString(ctx.DeviceID, []byte(os.Getenv("HASH_FIXED_SALT")))
	validToken := cache.Cache.FindOne(fmt.Sprintf("%s-refresh", string(deviceIDHash)))
	if validToken == nil {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired", ctx.DeviceID)
		return nil, false
	}
	match := cryptography.CryptoHahser.VerifyHashData(*validToken, authToken)
	if !match {
		apperrors.AuthenticationError(ctx.Ctx, "this session has expired", ctx.DeviceID)
		return nil, false
	}

	if authTokenClaims["tokenType"] != "refresh_token" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorised access", ctx.DeviceID)
		return nil, false
	}

	ctx.SetContextData("TerminalID", authTokenClaims["terminalID"])
	ctx.SetContextData("TerminalName", authTokenClaims["terminalName"])
	return ctx, true
}
