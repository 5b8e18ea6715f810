package entities

import (
	"strings"
	"testing"
	"time"
)

func TestTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionState
		to      SessionState
		wantErr bool
	}{
		{
			name: "started to recognized",
			from: SessionStarted,
			to:   SessionRecognized,
		},
		{
			name: "started to rejected",
			from: SessionStarted,
			to:   SessionRejected,
		},
		{
			name:    "started cannot skip to liveness passed",
			from:    SessionStarted,
			to:      SessionLivenessPassed,
			wantErr: true,
		},
		{
			name:    "started cannot skip to recorded",
			from:    SessionStarted,
			to:      SessionRecorded,
			wantErr: true,
		},
		{
			name: "recognized to liveness pending",
			from: SessionRecognized,
			to:   SessionLivenessPending,
		},
		{
			name: "recognized to rejected",
			from: SessionRecognized,
			to:   SessionRejected,
		},
		{
			name:    "recognized cannot move back to started",
			from:    SessionRecognized,
			to:      SessionStarted,
			wantErr: true,
		},
		{
			name:    "recognized cannot skip to recorded",
			from:    SessionRecognized,
			to:      SessionRecorded,
			wantErr: true,
		},
		{
			name: "liveness pending retries itself",
			from: SessionLivenessPending,
			to:   SessionLivenessPending,
		},
		{
			name: "liveness pending to liveness passed",
			from: SessionLivenessPending,
			to:   SessionLivenessPassed,
		},
		{
			name: "liveness pending to rejected",
			from: SessionLivenessPending,
			to:   SessionRejected,
		},
		{
			name:    "liveness pending cannot skip to recorded",
			from:    SessionLivenessPending,
			to:      SessionRecorded,
			wantErr: true,
		},
		{
			name: "liveness passed to recorded",
			from: SessionLivenessPassed,
			to:   SessionRecorded,
		},
		{
			name: "liveness passed to rejected",
			from: SessionLivenessPassed,
			to:   SessionRejected,
		},
		{
			name:    "liveness passed cannot retry liveness",
			from:    SessionLivenessPassed,
			to:      SessionLivenessPending,
			wantErr: true,
		},
		{
			name:    "recorded is terminal",
			from:    SessionRecorded,
			to:      SessionRejected,
			wantErr: true,
		},
		{
			name:    "rejected is terminal",
			from:    SessionRejected,
			to:      SessionStarted,
			wantErr: true,
		},
		{
			name:    "rejected cannot be recognized",
			from:    SessionRejected,
			to:      SessionRecognized,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := VerificationSession{State: tt.from}
			err := session.TransitionTo(tt.to)

			if tt.wantErr {
				if err == nil {
					t.Errorf("TransitionTo() expected error but got none")
					return
				}
				if !strings.Contains(err.Error(), string(tt.from)) || !strings.Contains(err.Error(), string(tt.to)) {
					t.Errorf("TransitionTo() error = %v, want error naming %s and %s", err, tt.from, tt.to)
				}
				if session.State != tt.from {
					t.Errorf("Expected state to stay %s after illegal transition, got %s", tt.from, session.State)
				}
			} else {
				if err != nil {
					t.Errorf("TransitionTo() unexpected error = %v", err)
					return
				}
				if session.State != tt.to {
					t.Errorf("Expected state %s, got %s", tt.to, session.State)
				}
			}
		})
	}
}

func TestNewVerificationSession(t *testing.T) {
	t.Run("fresh session", func(t *testing.T) {
		session := NewVerificationSession("terminal-1", 2*time.Minute)

		if session.ID == "" {
			t.Error("Expected ID to be set")
		}
		if session.TerminalID != "terminal-1" {
			t.Errorf("Expected TerminalID 'terminal-1', got '%s'", session.TerminalID)
		}
		if session.State != SessionStarted {
			t.Errorf("Expected state %s, got %s", SessionStarted, session.State)
		}
		if session.LivenessPassed {
			t.Error("Expected LivenessPassed to be false")
		}
		if session.RecognizedIdentityID != nil {
			t.Error("Expected RecognizedIdentityID to be nil")
		}

		budget := session.ExpiresAt.Sub(session.StartedAt)
		if budget != 2*time.Minute {
			t.Errorf("Expected a 2 minute budget, got %v", budget)
		}
	})

	t.Run("distinct IDs", func(t *testing.T) {
		first := NewVerificationSession("terminal-1", time.Minute)
		second := NewVerificationSession("terminal-1", time.Minute)

		if first.ID == second.ID {
			t.Errorf("Expected distinct session IDs, both were '%s'", first.ID)
		}
	})
}

func TestSessionExpired(t *testing.T) {
	started := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	session := VerificationSession{
		StartedAt: started,
		ExpiresAt: started.Add(2 * time.Minute),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "inside the budget",
			now:  started.Add(30 * time.Second),
			want: false,
		},
		{
			name: "exactly at the deadline",
			now:  started.Add(2 * time.Minute),
			want: false,
		},
		{
			name: "past the deadline",
			now:  started.Add(2*time.Minute + time.Second),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.Expired(tt.now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
