package middlewares

import (
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	authusecase "veriface.io/application/usecases/auth"
)

func TerminalAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], intent *string, authToken string) (*interfaces.ApplicationContext[any], bool) {
	authResult := authusecase.IsTerminalSignedIn(ctx.Ctx, authToken, intent, ctx.DeviceID)

	if !authResult.IsAuthenticated {
		apperrors.AuthenticationError(ctx.Ctx, authResult.ErrorMessage, ctx.DeviceID)
		return nil, false
	}

	terminalRepo := repository.TerminalRepo()
	terminal, err := terminalRepo.FindByID(authResult.TerminalID)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return nil, false
	}
	if terminal == nil || !terminal.Active {
		apperrors.AuthenticationError(ctx.Ctx, "this terminal has been deactivated", ctx.DeviceID)
		return nil, false
	}

	ctx.SetContextData("TerminalID", authResult.TerminalID)
	ctx.SetContextData("TerminalName", authResult.TerminalName)
	ctx.SetContextData("UserAgent", authResult.UserAgent)
	ctx.SetContextData("DeviceID", authResult.DeviceID)

	return ctx, true
}
