package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("name_spacial_char", validateNameWithSpecialChars)
	validate.RegisterValidation("detection_model", validateDetectionModel)
	validate.RegisterValidation("embedding_model", validateEmbeddingModel)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errs := []error{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs = append(errs, err)
		return &errs
	}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("%s failed on the %s rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return &errs
}

func validateField(value any, rules string) error {
	return validate.Var(value, rules)
}
