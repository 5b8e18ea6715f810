package terminal_usecases

import (
	"fmt"
	"os"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

const maxPairingAttempts = 5

// PairTerminalUseCase exchanges a one-time pairing code for a terminal
// session. The caller has already proven possession of the terminal key, so a
// valid code completes the enrollment of the physical device.
func PairTerminalUseCase(ctx any, payload *dto.PairTerminalDTO, terminalID string, deviceID string, userAgent string, clientIP *string, country *string, city *string) (*string, *string, *entities.Terminal) {
	terminalRepo := repository.TerminalRepo()
	terminal, err := terminalRepo.FindByID(terminalID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil, nil
	}
	if terminal == nil {
		apperrors.NotFoundError(ctx, "terminal not found", &deviceID)
		return nil, nil, nil
	}
	// A pairing code survives at most maxPairingAttempts guesses; the counter
	// expires with the code window.
	attempts := cache.Cache.IncrementField(fmt.Sprintf("%s-pair-attempts", terminal.ID), 1, time.Minute*10)
	if attempts > maxPairingAttempts {
		logger.Warning("terminal pairing locked out after repeated failures", logger.LoggerOptions{
			Key:  "terminalID",
			Data: terminal.ID,
		})
		apperrors.ClientError(ctx, "too many pairing attempts. request a new pairing code", nil, nil, deviceID)
		return nil, nil, nil
	}
	msg, success := auth.VerifyOTP(terminal.ID, payload.PairingCode)
	if !success {
		apperrors.ClientError(ctx, msg, nil, nil, deviceID)
		return nil, nil, nil
	}
	otpIntent := cache.Cache.FindOne(fmt.Sprintf("%s-otp-intent", terminal.NotificationEmail))
	if otpIntent == nil || *otpIntent != "terminal_pair" {
		apperrors.ClientError(ctx, "this pairing code has expired", nil, nil, deviceID)
		return nil, nil, nil
	}
	cache.Cache.DeleteOne(fmt.Sprintf("%s-otp-intent", terminal.NotificationEmail))
	cache.Cache.DeleteOne(fmt.Sprintf("%s-pair-attempts", terminal.ID))

	accessToken, refreshToken := issueTerminalSession(ctx, terminal, deviceID, userAgent)
	if accessToken == nil {
		return nil, nil, nil
	}

	update := map[string]any{
		"paired":     true,
		"lastSeenAt": time.Now(),
	}
	if clientIP != nil {
		update["lastSeenIP"] = *clientIP
	}
	if country != nil {
		update["country"] = *country
	}
	if city != nil {
		update["city"] = *city
	}
	_, err = terminalRepo.UpdatePartialByID(terminal.ID, update)
	if err != nil {
		logger.Error("an error occured while marking terminal as paired", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "terminalID",
			Data: terminal.ID,
		})
	}
	return accessToken, refreshToken, terminal
}

// issueTerminalSession mints the access and refresh token pair and pins their
// hashes in the cache keyed by the requesting device.
func issueTerminalSession(ctx any, terminal *entities.Terminal, deviceID string, userAgent string) (*string, *string) {
	accessToken, err := auth.GenerateAuthToken(auth.ClaimsData{
		TerminalID:   terminal.ID,
		TerminalName: terminal.Name,
		FleetID:      terminal.FleetID,
		DeviceID:     deviceID,
		UserAgent:    userAgent,
		TokenType:    "access_token",
		IssuedAt:     time.Now().Unix(),
		ExpiresAt:    time.Now().Add(time.Hour * 1).Unix(), //lasts for 1 hr
	})
	if err != nil {
		logger.Error("an error occured while generating terminal access token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}
	refreshToken, err := auth.GenerateAuthToken(auth.ClaimsData{
		TerminalID:   terminal.ID,
		TerminalName: terminal.Name,
		FleetID:      terminal.FleetID,
		DeviceID:     deviceID,
		UserAgent:    userAgent,
		TokenType:    "refresh_token",
		IssuedAt:     time.Now().Unix(),
		ExpiresAt:    time.Now().Add(time.Hour * 24 * 30).Unix(), //lasts for 30 days
	})
	if err != nil {
		logger.Error("an error occured while generating terminal refresh token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, deviceID)
		return nil, nil
	}

	hashedAccessToken, _ := cryptography.CryptoHahser.HashString(*accessToken, nil)
	hashedRefreshToken, _ := cryptography.CryptoHahser.HashString(*refreshToken, nil)
	hashedDeviceID, _ := cryptography.CryptoHahser.HashString(deviceID, []byte(os.Getenv("HASH_FIXED_SALT")))
	cache.Cache.CreateEntry(fmt.Sprintf("%s-access", string(hashedDeviceID)), string(hashedAccessToken), time.Hour*1)
	cache.Cache.CreateEntry(fmt.Sprintf("%s-refresh", string(hashedDeviceID)), string(hashedRefreshToken), time.Hour*24*30)
	return accessToken, refreshToken
}
