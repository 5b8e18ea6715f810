package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"veriface.io/application/constants"
	"veriface.io/application/utils"
)

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	regex := regexp.MustCompile(`^[\p{L}'\-]+$`)
	return regex.MatchString(name)
}

func validateDetectionModel(fl validator.FieldLevel) bool {
	return utils.HasItemString(&constants.SUPPORTED_DETECTION_MODELS, fl.Field().String())
}

func validateEmbeddingModel(fl validator.FieldLevel) bool {
	return utils.HasItemString(&constants.SUPPORTED_EMBEDDING_MODELS, fl.Field().String())
}
