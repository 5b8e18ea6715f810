package middlewares

import (
	"context"
	"fmt"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/connection/cache"
)

func TerminalKeyAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], ipAddress string) (*interfaces.ApplicationContext[any], bool) {
	terminalKeyPointer := ctx.GetHeader("X-Terminal-Key")
	if terminalKeyPointer == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide a terminal key", ctx.DeviceID)
		return nil, false
	}
	terminalKey := *terminalKeyPointer
	terminalIDPointer := ctx.GetHeader("X-Terminal-Id")
	if terminalIDPointer == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide a terminal id", ctx.DeviceID)
		return nil, false
	}
	terminalID := *terminalIDPointer

	// Rate limit: 60 requests per minute per terminal ID
	if !CheckRateLimit(terminalID, time.Minute, 60) {
		apperrors.ClientError(ctx.Ctx, "rate limit exceeded, please try again later", nil, nil, ctx.DeviceID)
		return nil, false
	}
	terminalRepo := repository.TerminalRepo()
	terminal, _ := terminalRepo.FindByID(terminalID)
	if terminal == nil {
		apperrors.NotFoundError(ctx.Ctx, "invalid credentials", &ctx.DeviceID)
		return nil, false
	}
	if !terminal.Active {
		apperrors.AuthenticationError(ctx.Ctx, "this terminal has been deactivated", ctx.DeviceID)
		return nil, false
	}
	match := cryptography.CryptoHahser.VerifyHashData(terminal.KeyHash, terminalKey)
	if !match {
		apperrors.ClientError(ctx.Ctx, "invalid credentials", nil, nil, ctx.DeviceID)
		return nil, false
	}
	ctx.SetContextData("TerminalID", terminal.ID)
	ctx.SetContextData("TerminalName", terminal.Name)
	return ctx, true
}

// CheckRateLimit checks if the given ID has exceeded the rate limit using Redis
// id: unique identifier (e.g., IP address, terminal ID, api key owner)
// timeWindow: duration of the rate limit window (e.g., time.Minute)
// maxRequests: maximum number of requests allowed in the time window
// Returns true if the request is allowed, false if rate limit is exceeded
func CheckRateLimit(id string, timeWindow time.Duration, maxRequests int) bool {
	redisClient, err := cache.GetInstance()
	if err != nil {
		// If Redis is unavailable, allow the request (fail open)
		return true
	}

	ctx := context.Background()
	key := fmt.Sprintf("rate_limit:%s", id)

	pipe := redisClient.Client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, timeWindow)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return true
	}

	count := incrCmd.Val()
	return count <= int64(maxRequests)
}
