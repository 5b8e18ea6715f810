package terminal_usecases

import (
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/repository"
)

// RefreshTerminalSessionUseCase rotates the access and refresh token pair for
// a terminal whose refresh token has already been validated upstream.
func RefreshTerminalSessionUseCase(ctx any, terminalID string, deviceID string, userAgent string) (*string, *string) {
	terminalRepo := repository.TerminalRepo()
	terminal, err := terminalRepo.FindByID(terminalID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil
	}
	if terminal == nil || !terminal.Active {
		apperrors.AuthenticationError(ctx, "this terminal has been deactivated", deviceID)
		return nil, nil
	}
	return issueTerminalSession(ctx, terminal, deviceID, userAgent)
}
