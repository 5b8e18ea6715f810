package biometric

import (
	"errors"
	"testing"
	"time"

	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
)

func recognitionOutcome() *types.RecognitionResult {
	return &types.RecognitionResult{
		Candidate: types.MatchCandidate{Identity: "Ada Eze", Similarity: 0.92},
		Quality:   types.QualityScore{Overall: 0.8, Suitable: true},
		Region:    types.FaceRegion{Width: 480, Height: 480},
		LatencyMS: 42,
	}
}

func gateErrorCode(t *testing.T, err error) string {
	t.Helper()
	var recordErr *InvalidAttendanceRecordError
	if !errors.As(err, &recordErr) {
		t.Fatalf("error = %v, want InvalidAttendanceRecordError", err)
	}
	return recordErr.Code
}

func TestBuildRecordRequiresLiveness(t *testing.T) {
	gate := &AttendanceGate{}
	now := time.Now()

	tests := []struct {
		name  string
		setup func(session *entities.VerificationSession)
	}{
		{
			name:  "fresh session",
			setup: func(session *entities.VerificationSession) {},
		},
		{
			name: "recognized with full confidence but no liveness",
			setup: func(session *entities.VerificationSession) {
				result := recognitionOutcome()
				result.Candidate.Similarity = 1.0
				if err := gate.MarkRecognized(session, result, "identity-1", now); err != nil {
					t.Fatalf("MarkRecognized() unexpected error = %v", err)
				}
			},
		},
		{
			name: "liveness attempted but never passed",
			setup: func(session *entities.VerificationSession) {
				if err := gate.MarkRecognized(session, recognitionOutcome(), "identity-1", now); err != nil {
					t.Fatalf("MarkRecognized() unexpected error = %v", err)
				}
				if err := gate.MarkLiveness(session, false, 1, now); err != nil {
					t.Fatalf("MarkLiveness() unexpected error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := entities.NewVerificationSession("terminal-1", time.Minute)
			tt.setup(&session)

			record, err := gate.BuildRecord(&session, now)
			if record != nil {
				t.Fatalf("BuildRecord() produced a record without liveness: %+v", record)
			}
			if code := gateErrorCode(t, err); code != CodeLivenessNotVerified {
				t.Errorf("BuildRecord() code = %s, want %s", code, CodeLivenessNotVerified)
			}
		})
	}
}

func TestGateRejectsExpiredSessions(t *testing.T) {
	gate := &AttendanceGate{}
	session := entities.NewVerificationSession("terminal-1", time.Minute)
	later := time.Now().Add(2 * time.Minute)

	if err := gate.MarkRecognized(&session, recognitionOutcome(), "identity-1", later); err == nil {
		t.Error("MarkRecognized() accepted an expired session")
	} else if code := gateErrorCode(t, err); code != CodeSessionExpired {
		t.Errorf("MarkRecognized() code = %s, want %s", code, CodeSessionExpired)
	}

	_, err := gate.BuildRecord(&session, later)
	if code := gateErrorCode(t, err); code != CodeSessionExpired {
		t.Errorf("BuildRecord() code = %s, want %s", code, CodeSessionExpired)
	}
}

func TestGatePhaseOrdering(t *testing.T) {
	gate := &AttendanceGate{}
	now := time.Now()

	t.Run("liveness before recognition", func(t *testing.T) {
		session := entities.NewVerificationSession("terminal-1", time.Minute)
		err := gate.MarkLiveness(&session, true, 3, now)
		if code := gateErrorCode(t, err); code != CodeInvalidTransition {
			t.Errorf("MarkLiveness() code = %s, want %s", code, CodeInvalidTransition)
		}
	})

	t.Run("recognition cannot run twice", func(t *testing.T) {
		session := entities.NewVerificationSession("terminal-1", time.Minute)
		if err := gate.MarkRecognized(&session, recognitionOutcome(), "identity-1", now); err != nil {
			t.Fatalf("MarkRecognized() unexpected error = %v", err)
		}
		err := gate.MarkRecognized(&session, recognitionOutcome(), "identity-2", now)
		if code := gateErrorCode(t, err); code != CodeInvalidTransition {
			t.Errorf("MarkRecognized() code = %s, want %s", code, CodeInvalidTransition)
		}
	})

	t.Run("rejected session is terminal", func(t *testing.T) {
		session := entities.NewVerificationSession("terminal-1", time.Minute)
		if err := gate.Reject(&session, "operator cancelled"); err != nil {
			t.Fatalf("Reject() unexpected error = %v", err)
		}
		_, err := gate.BuildRecord(&session, now)
		if code := gateErrorCode(t, err); code != CodeInvalidTransition {
			t.Errorf("BuildRecord() code = %s, want %s", code, CodeInvalidTransition)
		}
	})
}

func TestGateLivenessRetry(t *testing.T) {
	gate := &AttendanceGate{}
	now := time.Now()
	session := entities.NewVerificationSession("terminal-1", time.Minute)

	if err := gate.MarkRecognized(&session, recognitionOutcome(), "identity-1", now); err != nil {
		t.Fatalf("MarkRecognized() unexpected error = %v", err)
	}
	if err := gate.MarkLiveness(&session, false, 1, now); err != nil {
		t.Fatalf("MarkLiveness() unexpected error = %v", err)
	}
	if session.State != entities.SessionLivenessPending {
		t.Fatalf("session state = %s, want %s after a failed attempt", session.State, entities.SessionLivenessPending)
	}
	if err := gate.MarkLiveness(&session, true, 4, now); err != nil {
		t.Fatalf("MarkLiveness() retry unexpected error = %v", err)
	}
	if session.State != entities.SessionLivenessPassed {
		t.Errorf("session state = %s, want %s", session.State, entities.SessionLivenessPassed)
	}
	if session.BlinkCount != 4 {
		t.Errorf("session blink count = %d, want 4", session.BlinkCount)
	}
}

func TestGateFullFlow(t *testing.T) {
	gate := &AttendanceGate{}
	now := time.Now()
	session := entities.NewVerificationSession("terminal-1", time.Minute)

	if err := gate.MarkRecognized(&session, recognitionOutcome(), "identity-1", now); err != nil {
		t.Fatalf("MarkRecognized() unexpected error = %v", err)
	}
	if err := gate.MarkLiveness(&session, true, 3, now); err != nil {
		t.Fatalf("MarkLiveness() unexpected error = %v", err)
	}

	record, err := gate.BuildRecord(&session, now)
	if err != nil {
		t.Fatalf("BuildRecord() unexpected error = %v", err)
	}

	if record.IdentityID != "identity-1" {
		t.Errorf("record identity = %s, want identity-1", record.IdentityID)
	}
	if record.IdentityName != "Ada Eze" {
		t.Errorf("record identity name = %s, want Ada Eze", record.IdentityName)
	}
	if record.TerminalID != "terminal-1" {
		t.Errorf("record terminal = %s, want terminal-1", record.TerminalID)
	}
	if record.SessionID != session.ID {
		t.Errorf("record session = %s, want %s", record.SessionID, session.ID)
	}
	if record.Date != now.Format(time.DateOnly) || record.Time != now.Format(time.TimeOnly) {
		t.Errorf("record timestamp = %s %s, want %s %s", record.Date, record.Time, now.Format(time.DateOnly), now.Format(time.TimeOnly))
	}
	if record.Confidence != 0.92 || record.QualityScore != 0.8 || record.LatencyMS != 42 {
		t.Errorf("record carried wrong phase outcomes: %+v", record)
	}
	if record.Stage != StageVerified {
		t.Errorf("record stage = %s, want %s", record.Stage, StageVerified)
	}
	if record.BlinkCount != 3 {
		t.Errorf("record blink count = %d, want 3", record.BlinkCount)
	}
	if session.State != entities.SessionRecorded {
		t.Errorf("session state = %s, want %s", session.State, entities.SessionRecorded)
	}

	if _, err := gate.BuildRecord(&session, now); err == nil {
		t.Error("BuildRecord() produced a second record for a finalized session")
	}
}

func TestBuildRecordValidatesFields(t *testing.T) {
	gate := &AttendanceGate{}
	now := time.Now()
	session := entities.NewVerificationSession("terminal-1", time.Minute)

	result := recognitionOutcome()
	if err := gate.MarkRecognized(&session, result, "identity-1", now); err != nil {
		t.Fatalf("MarkRecognized() unexpected error = %v", err)
	}
	if err := gate.MarkLiveness(&session, true, 3, now); err != nil {
		t.Fatalf("MarkLiveness() unexpected error = %v", err)
	}
	session.Confidence = 1.5

	_, err := gate.BuildRecord(&session, now)
	if code := gateErrorCode(t, err); code != CodeMalformedRecord {
		t.Errorf("BuildRecord() code = %s, want %s", code, CodeMalformedRecord)
	}
}
