package auth_usecases

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

// TerminalAuthResult represents the result of terminal authentication
type TerminalAuthResult struct {
	IsAuthenticated bool
	TerminalID      string
	TerminalName    string
	UserAgent       string
	DeviceID        string
	ErrorMessage    string
}

// IsTerminalSignedIn validates that a terminal holds a live session token
// issued by this service and that the token was minted for the requesting device.
func IsTerminalSignedIn(ctx any, authToken any, intent *string, deviceID string) TerminalAuthResult {
	result := TerminalAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" || authToken == nil {
		result.ErrorMessage = "missing auth token"
		return result
	}

	validAccessToken, err := auth.DecodeAuthToken(authToken.(string))
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	if !validAccessToken.Valid {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)

	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to access terminal session with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: validAccessToken,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if authTokenClaims["deviceID"] != deviceID {
		logger.Warning("terminal made request using device id different from that in access token", logger.LoggerOptions{
			Key:  "token device id",
			Data: authTokenClaims["deviceID"],
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: deviceID,
		})
		result.ErrorMessage = "unauthorized access"
		return result
	}

	deviceIDHash, _ := cryptography.CryptoHahser.HashString(deviceID, []byte(os.Getenv("HASH_FIXED_SALT")))
	validToken := cache.Cache.FindOne(fmt.Sprintf("%s-access", string(deviceIDHash)))
	if validToken == nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	match := cryptography.CryptoHahser.VerifyHashData(*validToken, authToken.(string))
	if !match {
		result.ErrorMessage = "this session has expired"
		return result
	}

	if intent != nil {
		if authTokenClaims["intent"] != *intent {
			result.ErrorMessage = "unauthorised access"
			return result
		}
	}

	if authTokenClaims["tokenType"] != "access_token" {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	result.IsAuthenticated = true
	result.TerminalID = authTokenClaims["terminalID"].(string)
	result.TerminalName = authTokenClaims["terminalName"].(string)
	result.UserAgent = authTokenClaims["userAgent"].(string)
	result.DeviceID = authTokenClaims["deviceID"].(string)

	return result
}
