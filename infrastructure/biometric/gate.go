package biometric

import (
	"time"

	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
)

// StageVerified tags records produced by the full two-phase flow.
const StageVerified = "recognition+liveness"

// AttendanceGate is the only component allowed to synthesize attendance
// records. It owns the session state machine and refuses record creation
// unless the liveness phase has already passed, no matter what order a
// caller attempted.
type AttendanceGate struct{}

// Admit checks that a session may still accept work. Expired sessions are
// rejected immediately rather than blocking, and finalized sessions never
// accept further frames.
func (gate *AttendanceGate) Admit(session *entities.VerificationSession, now time.Time) error {
	if session.Expired(now) {
		return &InvalidAttendanceRecordError{
			Code:    CodeSessionExpired,
			Message: "verification session has expired",
		}
	}
	if session.State == entities.SessionRecorded || session.State == entities.SessionRejected {
		return &InvalidAttendanceRecordError{
			Code:    CodeInvalidTransition,
			Message: "verification session is already finalized",
		}
	}
	return nil
}

// MarkRecognized stores the recognition phase outcome on the session.
func (gate *AttendanceGate) MarkRecognized(session *entities.VerificationSession, result *types.RecognitionResult, identityID string, now time.Time) error {
	if err := gate.Admit(session, now); err != nil {
		return err
	}
	if err := session.TransitionTo(entities.SessionRecognized); err != nil {
		return &InvalidAttendanceRecordError{Code: CodeInvalidTransition, Message: err.Error()}
	}
	session.RecognizedIdentityID = &identityID
	session.RecognizedName = &result.Candidate.Identity
	session.Confidence = result.Candidate.Similarity
	session.QualityScore = result.Quality.Overall
	session.RecognitionLatencyMS = result.LatencyMS
	return nil
}

// MarkLiveness stores a liveness attempt. A failed attempt leaves the
// session in LivenessPending so the challenge can be retried inside the
// session budget; only a pass moves it forward.
func (gate *AttendanceGate) MarkLiveness(session *entities.VerificationSession, passed bool, blinkCount int, now time.Time) error {
	if err := gate.Admit(session, now); err != nil {
		return err
	}
	if err := session.TransitionTo(entities.SessionLivenessPending); err != nil {
		return &InvalidAttendanceRecordError{Code: CodeInvalidTransition, Message: err.Error()}
	}
	session.BlinkCount = blinkCount
	if !passed {
		return nil
	}
	if err := session.TransitionTo(entities.SessionLivenessPassed); err != nil {
		return &InvalidAttendanceRecordError{Code: CodeInvalidTransition, Message: err.Error()}
	}
	session.LivenessPassed = true
	return nil
}

// Reject finalizes a session with a reason. Finalizing an already terminal
// session fails.
func (gate *AttendanceGate) Reject(session *entities.VerificationSession, reason string) error {
	if err := session.TransitionTo(entities.SessionRejected); err != nil {
		return &InvalidAttendanceRecordError{Code: CodeInvalidTransition, Message: err.Error()}
	}
	session.RejectionReason = &reason
	return nil
}

// BuildRecord synthesizes the attendance record for a fully verified
// session. The liveness check here is deliberate even though callers are
// expected to respect phase ordering: a record must never exist without a
// passed blink challenge behind it.
func (gate *AttendanceGate) BuildRecord(session *entities.VerificationSession, now time.Time) (*entities.AttendanceRecord, error) {
	if err := gate.Admit(session, now); err != nil {
		return nil, err
	}
	if session.State != entities.SessionLivenessPassed || !session.LivenessPassed {
		return nil, &InvalidAttendanceRecordError{
			Code:    CodeLivenessNotVerified,
			Message: "attendance cannot be recorded before liveness has passed",
		}
	}
	if session.RecognizedIdentityID == nil || session.RecognizedName == nil {
		return nil, &InvalidAttendanceRecordError{
			Code:    CodeInvalidTransition,
			Message: "session carries no recognized identity",
		}
	}

	record := entities.AttendanceRecord{
		IdentityID:   *session.RecognizedIdentityID,
		IdentityName: *session.RecognizedName,
		TerminalID:   session.TerminalID,
		SessionID:    session.ID,
		Date:         now.Format(time.DateOnly),
		Time:         now.Format(time.TimeOnly),
		Confidence:   session.Confidence,
		QualityScore: session.QualityScore,
		LatencyMS:    session.RecognitionLatencyMS,
		Stage:        StageVerified,
		BlinkCount:   session.BlinkCount,
	}
	if err := validateRecord(&record); err != nil {
		return nil, err
	}
	if err := session.TransitionTo(entities.SessionRecorded); err != nil {
		return nil, &InvalidAttendanceRecordError{Code: CodeInvalidTransition, Message: err.Error()}
	}
	return &record, nil
}

func validateRecord(record *entities.AttendanceRecord) error {
	malformed := func(message string) error {
		return &InvalidAttendanceRecordError{Code: CodeMalformedRecord, Message: message}
	}
	switch {
	case record.IdentityID == "":
		return malformed("record is missing an identity")
	case record.TerminalID == "":
		return malformed("record is missing a terminal")
	case record.SessionID == "":
		return malformed("record is missing a session identifier")
	case record.Date == "" || record.Time == "":
		return malformed("record is missing a timestamp")
	case record.Confidence < 0 || record.Confidence > 1:
		return malformed("record confidence is out of range")
	case record.QualityScore < 0 || record.QualityScore > 1:
		return malformed("record quality score is out of range")
	case record.LatencyMS < 0:
		return malformed("record latency is negative")
	case record.Stage == "":
		return malformed("record is missing a verification stage")
	}
	return nil
}
