package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionState string

const (
	SessionStarted         SessionState = "STARTED"
	SessionRecognized      SessionState = "RECOGNIZED"
	SessionLivenessPending SessionState = "LIVENESS_PENDING"
	SessionLivenessPassed  SessionState = "LIVENESS_PASSED"
	SessionRecorded        SessionState = "RECORDED"
	SessionRejected        SessionState = "REJECTED"
)

// sessionTransitions is the full set of legal state edges. Recorded and
// Rejected are terminal. LivenessPending loops on itself so a challenge can
// be retried inside the session budget.
var sessionTransitions = map[SessionState][]SessionState{
	SessionStarted:         {SessionRecognized, SessionRejected},
	SessionRecognized:      {SessionLivenessPending, SessionRejected},
	SessionLivenessPending: {SessionLivenessPending, SessionLivenessPassed, SessionRejected},
	SessionLivenessPassed:  {SessionRecorded, SessionRejected},
}

// VerificationSession ties one attendance attempt to a time-bounded budget,
// accumulating phase outcomes until a record may be constructed. Sessions
// live in the cache for their lifetime and are never written to the
// datastore; the attendance record is the only durable artifact.
type VerificationSession struct {
	ID                   string       `json:"id"`
	TerminalID           string       `json:"terminalID"`
	State                SessionState `json:"state"`
	RecognizedIdentityID *string      `json:"recognizedIdentityID,omitempty"`
	RecognizedName       *string      `json:"recognizedName,omitempty"`
	Confidence           float64      `json:"confidence"`
	QualityScore         float64      `json:"qualityScore"`
	RecognitionLatencyMS int64        `json:"recognitionLatencyMS"`
	BlinkCount           int          `json:"blinkCount"`
	LivenessPassed       bool         `json:"livenessPassed"`
	RejectionReason      *string      `json:"rejectionReason,omitempty"`
	StartedAt            time.Time    `json:"startedAt"`
	ExpiresAt            time.Time    `json:"expiresAt"`
}

func NewVerificationSession(terminalID string, ttl time.Duration) VerificationSession {
	now := time.Now()
	return VerificationSession{
		ID:         uuid.NewString(),
		TerminalID: terminalID,
		State:      SessionStarted,
		StartedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

func (session *VerificationSession) Expired(now time.Time) bool {
	return now.After(session.ExpiresAt)
}

// TransitionTo moves the session along a legal edge or fails without
// mutating it.
func (session *VerificationSession) TransitionTo(next SessionState) error {
	for _, allowed := range sessionTransitions[session.State] {
		if next == allowed {
			session.State = next
			return nil
		}
	}
	return fmt.Errorf("session cannot move from %s to %s", session.State, next)
}
