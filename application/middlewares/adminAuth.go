package middlewares

import (
	"os"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/infrastructure/cryptography"
)

// AdminAuthenticationMiddleware guards the management surface. The console key
// is provisioned out of band and only its argon2 hash lives in the environment.
func AdminAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], ipAddress string) (*interfaces.ApplicationContext[any], bool) {
	apiKeyPointer := ctx.GetHeader("X-Api-Key")
	if apiKeyPointer == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide an api key", ctx.DeviceID)
		return nil, false
	}
	apiKey := *apiKeyPointer

	// Rate limit: 100 requests per minute per console device
	if !CheckRateLimit(ctx.DeviceID, time.Minute, 100) {
		apperrors.ClientError(ctx.Ctx, "rate limit exceeded, please try again later", nil, nil, ctx.DeviceID)
		return nil, false
	}

	match := cryptography.CryptoHahser.VerifyHashData(os.Getenv("ADMIN_API_KEY_HASH"), apiKey)
	if !match {
		apperrors.ClientError(ctx.Ctx, "invalid credentials", nil, nil, ctx.DeviceID)
		return nil, false
	}
	ctx.SetContextData("Role", "admin")
	return ctx, true
}
