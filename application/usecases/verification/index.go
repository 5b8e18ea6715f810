package verification_usecases

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/detector"
	"veriface.io/infrastructure/biometric/embedding"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

var (
	orchestrator     *biometric.RecognitionOrchestrator
	orchestratorOnce sync.Once
)

var attendanceGate = &biometric.AttendanceGate{}

// recognitionOrchestrator builds the shared recognition pipeline on first
// use. Thresholds come from the environment with the engine defaults as
// fallback, so an unset value never weakens the gates.
func recognitionOrchestrator() *biometric.RecognitionOrchestrator {
	orchestratorOnce.Do(func() {
		orchestrator = biometric.NewRecognitionOrchestrator(
			detector.FaceDetectionService,
			embedding.EmbeddingService,
			biometric.NewQualityAssessor(envFloat("MIN_QUALITY_SCORE")),
			biometric.NewFaceMatcher(envFloat("MATCH_THRESHOLD")),
		)
	})
	return orchestrator
}

func envFloat(key string) float64 {
	parsed, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func sessionCacheKey(sessionID string) string {
	return fmt.Sprintf("%s-session", sessionID)
}

// fetchSession loads a live session and proves it belongs to the requesting
// terminal. A missing entry and an expired session are the same condition
// from the terminal's point of view.
func fetchSession(ctx any, sessionID string, terminalID string, deviceID string) *entities.VerificationSession {
	cached := cache.Cache.FindOne(sessionCacheKey(sessionID))
	if cached == nil {
		apperrors.ClientError(ctx, "this verification session has expired", nil, &constants.SESSION_EXPIRED_RETRY, deviceID)
		return nil
	}
	var session entities.VerificationSession
	if err := json.Unmarshal([]byte(*cached), &session); err != nil {
		logger.Error("an error occured while unmarshalling verification session", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: sessionID,
		})
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil
	}
	if session.TerminalID != terminalID {
		logger.Warning("terminal attempted to drive a session it does not own", logger.LoggerOptions{
			Key:  "sessionTerminalID",
			Data: session.TerminalID,
		}, logger.LoggerOptions{
			Key:  "requestTerminalID",
			Data: terminalID,
		})
		apperrors.AuthenticationError(ctx, "unauthorized access", deviceID)
		return nil
	}
	return &session
}

// saveSession writes the session back for the remainder of its budget.
func saveSession(ctx any, session *entities.VerificationSession, deviceID string) bool {
	payload, err := json.Marshal(session)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return false
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		apperrors.ClientError(ctx, "this verification session has expired", nil, &constants.SESSION_EXPIRED_RETRY, deviceID)
		return false
	}
	if success := cache.Cache.CreateEntry(sessionCacheKey(session.ID), string(payload), ttl); !success {
		apperrors.FatalServerError(ctx, fmt.Errorf("could not persist verification session %s", session.ID), deviceID)
		return false
	}
	return true
}

// loadGallery assembles the enrolled gallery for matching. Identities without
// vectors are skipped; they cannot be matched and would only dilute scores.
func loadGallery(ctx any, deviceID string) ([]types.GalleryEntry, map[string]entities.EnrolledIdentity) {
	identityRepo := repository.IdentityRepo()
	identities, err := identityRepo.FindMany(map[string]interface{}{
		"active":    true,
		"deletedAt": nil,
	})
	if err != nil {
		logger.Error("an error occured while loading the enrolled gallery", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, nil
	}
	gallery := make([]types.GalleryEntry, 0, len(identities))
	byID := make(map[string]entities.EnrolledIdentity, len(identities))
	for _, identity := range identities {
		if len(identity.Embeddings) == 0 {
			continue
		}
		gallery = append(gallery, types.GalleryEntry{
			Identity: identity.ID,
			Vectors:  identity.Embeddings,
		})
		byID[identity.ID] = identity
	}
	return gallery, byID
}
