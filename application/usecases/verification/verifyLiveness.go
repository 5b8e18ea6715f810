package verification_usecases

import (
	"context"
	"image"
	"time"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/detector"
	"veriface.io/infrastructure/biometric/types"
)

// VerifyLivenessUseCase runs the blink challenge over a frame sequence. The
// terminal may send precomputed landmark meshes with the frames; when it does
// not, the vision sidecar extracts them here. A failed challenge keeps the
// session alive for another attempt inside its budget.
func VerifyLivenessUseCase(ctx any, payload *dto.VerifyLivenessDTO, terminalID string, deviceID string) (*entities.VerificationSession, bool) {
	session := fetchSession(ctx, payload.SessionID, terminalID, deviceID)
	if session == nil {
		return nil, false
	}
	if err := attendanceGate.Admit(session, time.Now()); err != nil {
		respondGateError(ctx, err, deviceID)
		return nil, false
	}

	frames := make([]image.Image, 0, len(payload.Frames))
	for _, data := range payload.Frames {
		frame, err := utils.DecodeBase64Image(data)
		if err != nil {
			apperrors.ClientError(ctx, "one of the challenge frames is not a valid base64 encoded image", nil, nil, deviceID)
			return nil, false
		}
		frames = append(frames, frame)
	}

	landmarksPerFrame := payload.LandmarksPerFrame
	if len(landmarksPerFrame) == 0 {
		landmarksPerFrame = make([][]types.Point, 0, len(frames))
		for _, frame := range frames {
			landmarks, err := detector.LandmarkService.ExtractLandmarks(context.TODO(), frame)
			if err != nil {
				apperrors.ExternalDependencyError(ctx, "veriface-vision", "500", err, deviceID)
				return nil, false
			}
			landmarksPerFrame = append(landmarksPerFrame, landmarks)
		}
	}

	verifier, err := biometric.NewLivenessVerifier(int(constants.MIN_BLINKS_REQUIRED), 0)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return nil, false
	}
	passed, err := verifier.Verify(frames, landmarksPerFrame)
	if err != nil {
		apperrors.ClientError(ctx, err.Error(), nil, nil, deviceID)
		return nil, false
	}

	if err := attendanceGate.MarkLiveness(session, passed, verifier.BlinkCount(), time.Now()); err != nil {
		respondGateError(ctx, err, deviceID)
		return nil, false
	}
	if !saveSession(ctx, session, deviceID) {
		return nil, false
	}
	return session, passed
}
