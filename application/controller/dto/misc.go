package dto

import (
	"veriface.io/infrastructure/file_upload/types"
)

type GeneratedSignedURLDTO struct {
	Permission types.SignedURLPermission `json:"permission"`
	FilePath   string                    `json:"filePath" validate:"required,max=100"`
}
