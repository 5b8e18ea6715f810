package entities

import (
	"time"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/biometric/types"
)

// EnrolledIdentity is a person registered for face attendance. Embeddings
// holds one or more enrollment vectors; matching takes the best score across
// them so re-enrollment under different lighting improves recall instead of
// replacing the original capture.
type EnrolledIdentity struct {
	FirstName  string                  `bson:"firstName" json:"firstName" validate:"required,max=100,name_spacial_char"`
	LastName   string                  `bson:"lastName" json:"lastName" validate:"required,max=100,name_spacial_char"`
	Email      *string                 `bson:"email" json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string                 `bson:"phone" json:"phone,omitempty"`
	Embeddings []types.EmbeddingVector `bson:"embeddings" json:"-"`
	Image      string                  `bson:"image" json:"image"`
	Active     bool                    `bson:"active" json:"active"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model EnrolledIdentity) DisplayName() string {
	return model.FirstName + " " + model.LastName
}

func (model EnrolledIdentity) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
