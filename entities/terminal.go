package entities

import (
	"time"

	"veriface.io/application/utils"
)

// Terminal is a kiosk device authorized to run verification sessions. The
// terminal key is stored only as an argon2 hash; the plaintext is shown once
// at registration.
type Terminal struct {
	Name              string     `bson:"name" json:"name" validate:"required,max=100"`
	Location          string     `bson:"location" json:"location" validate:"required,max=200"`
	KeyHash           string     `bson:"keyHash" json:"-"`
	FleetID           *string    `bson:"fleetID" json:"fleetID,omitempty"`
	NotificationEmail string     `bson:"notificationEmail" json:"notificationEmail" validate:"omitempty,email"`
	Active            bool       `bson:"active" json:"active"`
	Paired            bool       `bson:"paired" json:"paired"`
	LastSeenAt        *time.Time `bson:"lastSeenAt" json:"lastSeenAt"`
	LastSeenIP        *string    `bson:"lastSeenIP" json:"lastSeenIP,omitempty"`
	Country           *string    `bson:"country" json:"country,omitempty"`
	City              *string    `bson:"city" json:"city,omitempty"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Terminal) ParseModel() any {
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
