package verification_usecases

import (
	"context"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/utils"
)

// GroupMatch is one face in a group frame. Unmatched faces keep their slot
// with a nil identity so positions line up with the detector's output.
type GroupMatch struct {
	IdentityID   *string  `json:"identityID"`
	IdentityName *string  `json:"identityName"`
	Similarity   *float64 `json:"similarity"`
}

// RecognizeGroupUseCase matches every face in a single frame against the
// enrolled gallery. It never touches a verification session; group frames
// are an audit aid, not a path to attendance records.
func RecognizeGroupUseCase(ctx any, payload *dto.RecognizeGroupDTO, deviceID string) []GroupMatch {
	frame, err := utils.DecodeBase64Image(payload.Frame)
	if err != nil {
		apperrors.ClientError(ctx, "frame is not a valid base64 encoded image", nil, nil, deviceID)
		return nil
	}
	gallery, identities := loadGallery(ctx, deviceID)
	if gallery == nil {
		return nil
	}
	if len(gallery) == 0 {
		apperrors.ClientError(ctx, "no identities are enrolled for matching", nil, &constants.FACE_NOT_RECOGNIZED, deviceID)
		return nil
	}

	candidates, err := recognitionOrchestrator().RecognizeMultipleFaces(context.TODO(), frame, gallery)
	if err != nil {
		respondRecognitionError(ctx, err, deviceID)
		return nil
	}

	matches := make([]GroupMatch, len(candidates))
	for i, candidate := range candidates {
		if candidate == nil {
			continue
		}
		match := GroupMatch{
			Similarity: &candidate.Similarity,
		}
		if identity, found := identities[candidate.Identity]; found {
			match.IdentityID = utils.GetStringPointer(identity.ID)
			match.IdentityName = utils.GetStringPointer(identity.DisplayName())
		}
		matches[i] = match
	}
	return matches
}
