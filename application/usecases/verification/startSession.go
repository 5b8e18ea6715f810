package verification_usecases

import (
	"time"

	"veriface.io/application/constants"
	"veriface.io/entities"
)

// StartVerificationSessionUseCase opens a fresh attendance attempt for a
// terminal. The session lives only in the cache and dies on its own when the
// budget lapses.
func StartVerificationSessionUseCase(ctx any, terminalID string, deviceID string) *entities.VerificationSession {
	session := entities.NewVerificationSession(terminalID, time.Duration(constants.SESSION_TTL_MINS)*time.Minute)
	if !saveSession(ctx, &session, deviceID) {
		return nil
	}
	return &session
}
