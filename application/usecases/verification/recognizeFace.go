package verification_usecases

import (
	"context"
	"errors"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/logger"
)

// RecognizeFaceUseCase runs the recognition phase of a session: one frame in,
// the best enrolled identity out. Recoverable outcomes (no face, poor
// quality, no match) respond with their retry code and leave the session
// untouched so the terminal can capture again.
func RecognizeFaceUseCase(ctx any, payload *dto.RecognizeFaceDTO, terminalID string, deviceID string) (*entities.VerificationSession, *entities.EnrolledIdentity) {
	session := fetchSession(ctx, payload.SessionID, terminalID, deviceID)
	if session == nil {
		return nil, nil
	}
	if err := attendanceGate.Admit(session, time.Now()); err != nil {
		respondGateError(ctx, err, deviceID)
		return nil, nil
	}

	frame, err := utils.DecodeBase64Image(payload.Frame)
	if err != nil {
		apperrors.ClientError(ctx, "frame is not a valid base64 encoded image", nil, nil, deviceID)
		return nil, nil
	}
	gallery, identities := loadGallery(ctx, deviceID)
	if gallery == nil {
		return nil, nil
	}
	if len(gallery) == 0 {
		apperrors.ClientError(ctx, "no identities are enrolled for matching", nil, &constants.FACE_NOT_RECOGNIZED, deviceID)
		return nil, nil
	}

	result, err := recognitionOrchestrator().RecognizeFace(context.TODO(), frame, gallery)
	if err != nil {
		respondRecognitionError(ctx, err, deviceID)
		return nil, nil
	}

	identity, known := identities[result.Candidate.Identity]
	if !known {
		apperrors.ClientError(ctx, "face does not match any enrolled identity", nil, &constants.FACE_NOT_RECOGNIZED, deviceID)
		return nil, nil
	}
	// The gate records the candidate label verbatim, so swap the gallery key
	// for the human readable name before handing the result over.
	result.Candidate.Identity = identity.DisplayName()
	if err := attendanceGate.MarkRecognized(session, result, identity.ID, time.Now()); err != nil {
		respondGateError(ctx, err, deviceID)
		return nil, nil
	}
	if !saveSession(ctx, session, deviceID) {
		return nil, nil
	}
	return session, &identity
}

// respondRecognitionError maps engine failures to terminal facing responses.
func respondRecognitionError(ctx any, err error, deviceID string) {
	var qualityErr *biometric.InsufficientQualityError
	var embeddingErr *biometric.EmbeddingExtractionError
	switch {
	case errors.Is(err, biometric.ErrNoFaceDetected):
		apperrors.ClientError(ctx, "no face was detected in the frame", nil, nil, deviceID)
	case errors.Is(err, biometric.ErrFaceNotRecognized):
		apperrors.ClientError(ctx, "face does not match any enrolled identity", nil, &constants.FACE_NOT_RECOGNIZED, deviceID)
	case errors.As(err, &qualityErr):
		apperrors.ClientError(ctx, qualityErr.Score.Reason, nil, &constants.QUALITY_TOO_LOW, deviceID)
	case errors.As(err, &embeddingErr):
		apperrors.ExternalDependencyError(ctx, "veriface-vision", "500", err, deviceID)
	default:
		logger.Error("recognition phase failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx, err, nil, deviceID)
	}
}

// respondGateError maps session state machine failures.
func respondGateError(ctx any, err error, deviceID string) {
	var recordErr *biometric.InvalidAttendanceRecordError
	if errors.As(err, &recordErr) {
		switch recordErr.Code {
		case biometric.CodeSessionExpired:
			apperrors.ClientError(ctx, "this verification session has expired", nil, &constants.SESSION_EXPIRED_RETRY, deviceID)
			return
		case biometric.CodeLivenessNotVerified:
			apperrors.ClientError(ctx, recordErr.Message, nil, &constants.LIVENESS_RETRY, deviceID)
			return
		default:
			apperrors.ClientError(ctx, recordErr.Message, nil, nil, deviceID)
			return
		}
	}
	apperrors.UnknownError(ctx, err, nil, deviceID)
}
