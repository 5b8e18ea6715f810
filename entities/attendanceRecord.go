package entities

import (
	"time"

	"veriface.io/application/utils"
)

// AttendanceRecord is the final artifact of a verified session. Records are
// only ever synthesized by the attendance gate after liveness has passed;
// nothing else in the system writes to this collection.
type AttendanceRecord struct {
	IdentityID   string  `bson:"identityID" json:"identityID"`
	IdentityName string  `bson:"identityName" json:"identityName"`
	TerminalID   string  `bson:"terminalID" json:"terminalID"`
	SessionID    string  `bson:"sessionID" json:"sessionID"`
	Date         string  `bson:"date" json:"date"`
	Time         string  `bson:"time" json:"time"`
	Confidence   float64 `bson:"confidence" json:"confidence"`
	QualityScore float64 `bson:"qualityScore" json:"qualityScore"`
	LatencyMS    int64   `bson:"latencyMS" json:"latencyMS"`
	Stage        string  `bson:"stage" json:"stage"`
	BlinkCount   int     `bson:"blinkCount" json:"blinkCount"`
	EvidenceKey  *string `bson:"evidenceKey" json:"evidenceKey,omitempty"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model AttendanceRecord) ParseModel() any {
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
