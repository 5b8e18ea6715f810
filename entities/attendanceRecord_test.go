package entities

import (
	"testing"
	"time"
)

func TestAttendanceRecordParseModel(t *testing.T) {
	t.Run("assigns ID and timestamps on first persist", func(t *testing.T) {
		record := AttendanceRecord{IdentityID: "identity-1"}

		parsed := record.ParseModel().(*AttendanceRecord)

		if parsed.ID == "" {
			t.Error("Expected ID to be assigned")
		}
		if parsed.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
		if parsed.UpdatedAt.IsZero() {
			t.Error("Expected UpdatedAt to be set")
		}
	})

	t.Run("keeps a pre-assigned ID", func(t *testing.T) {
		record := AttendanceRecord{ID: "01J0000000000000000000TEST"}

		parsed := record.ParseModel().(*AttendanceRecord)

		if parsed.ID != "01J0000000000000000000TEST" {
			t.Errorf("Expected pre-assigned ID to survive, got '%s'", parsed.ID)
		}
	})

	t.Run("update leaves identity fields alone", func(t *testing.T) {
		created := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
		record := AttendanceRecord{
			ID:        "01J0000000000000000000TEST",
			CreatedAt: created,
		}

		parsed := record.ParseModel().(*AttendanceRecord)

		if !parsed.CreatedAt.Equal(created) {
			t.Errorf("Expected CreatedAt to stay %v, got %v", created, parsed.CreatedAt)
		}
		if parsed.ID != "01J0000000000000000000TEST" {
			t.Errorf("Expected ID to stay put, got '%s'", parsed.ID)
		}
		if !parsed.UpdatedAt.After(created) {
			t.Errorf("Expected UpdatedAt to move past %v, got %v", created, parsed.UpdatedAt)
		}
	})
}
