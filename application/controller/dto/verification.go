package dto

import (
	"veriface.io/infrastructure/biometric/types"
)

type RecognizeFaceDTO struct {
	SessionID string `json:"sessionID" validate:"required,uuid4"`
	Frame     string `json:"frame" validate:"required"`
}

type VerifyLivenessDTO struct {
	SessionID         string          `json:"sessionID" validate:"required,uuid4"`
	Frames            []string        `json:"frames" validate:"required,min=2"`
	LandmarksPerFrame [][]types.Point `json:"landmarksPerFrame,omitempty"`
}

type RecordAttendanceDTO struct {
	SessionID string `json:"sessionID" validate:"required,uuid4"`
}

type RecognizeGroupDTO struct {
	Frame string `json:"frame" validate:"required"`
}
