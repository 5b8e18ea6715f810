package validator

import (
	"strings"
	"testing"
)

func TestNameSpecialCharRule(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:  "plain name",
			value: "Amara",
		},
		{
			name:  "apostrophe",
			value: "O'Neil",
		},
		{
			name:  "hyphenated",
			value: "Adeyemi-Okafor",
		},
		{
			name:  "accented letters",
			value: "Núñez",
		},
		{
			name:    "space not allowed",
			value:   "Jane Doe",
			wantErr: true,
		},
		{
			name:    "digits not allowed",
			value:   "Jane2",
			wantErr: true,
		},
		{
			name:    "punctuation not allowed",
			value:   "Jane!",
			wantErr: true,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatorInstance.ValidateValue(tt.value, "name_spacial_char")

			if tt.wantErr && err == nil {
				t.Errorf("ValidateValue(%q) expected error but got none", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateValue(%q) unexpected error = %v", tt.value, err)
			}
		})
	}
}

func TestModelRules(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		rule    string
		wantErr bool
	}{
		{
			name:  "retinaface detector",
			value: "retinaface",
			rule:  "detection_model",
		},
		{
			name:  "haar detector",
			value: "haar",
			rule:  "detection_model",
		},
		{
			name:    "unknown detector",
			value:   "yunet",
			rule:    "detection_model",
			wantErr: true,
		},
		{
			name:  "facenet embedder",
			value: "facenet",
			rule:  "embedding_model",
		},
		{
			name:  "arcface embedder",
			value: "arcface",
			rule:  "embedding_model",
		},
		{
			name:    "unknown embedder",
			value:   "mobilenet",
			rule:    "embedding_model",
			wantErr: true,
		},
		{
			name:    "detector name rejected as embedder",
			value:   "haar",
			rule:    "embedding_model",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatorInstance.ValidateValue(tt.value, tt.rule)

			if tt.wantErr && err == nil {
				t.Errorf("ValidateValue(%q, %q) expected error but got none", tt.value, tt.rule)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateValue(%q, %q) unexpected error = %v", tt.value, tt.rule, err)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type pageRequest struct {
		PageSize int64   `validate:"required,min=1,max=100"`
		LastID   *string `validate:"omitempty"`
		Sort     int64   `validate:"omitempty,oneof=1 -1"`
	}

	t.Run("valid payload", func(t *testing.T) {
		errs := ValidatorInstance.ValidateStruct(pageRequest{PageSize: 20, Sort: -1})
		if errs != nil {
			t.Errorf("ValidateStruct() unexpected errors = %v", *errs)
		}
	})

	t.Run("missing page size", func(t *testing.T) {
		errs := ValidatorInstance.ValidateStruct(pageRequest{})
		if errs == nil {
			t.Fatal("ValidateStruct() expected errors but got none")
		}
		if len(*errs) != 1 {
			t.Errorf("Expected 1 error, got %d", len(*errs))
		}
		if !strings.Contains((*errs)[0].Error(), "PageSize") || !strings.Contains((*errs)[0].Error(), "required") {
			t.Errorf("Expected PageSize required failure, got %v", (*errs)[0])
		}
	})

	t.Run("out of range values", func(t *testing.T) {
		errs := ValidatorInstance.ValidateStruct(pageRequest{PageSize: 500, Sort: 3})
		if errs == nil {
			t.Fatal("ValidateStruct() expected errors but got none")
		}
		if len(*errs) != 2 {
			t.Errorf("Expected 2 errors, got %d", len(*errs))
		}
	})
}
