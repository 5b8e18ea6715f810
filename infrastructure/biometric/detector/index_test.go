package detector

import (
	"context"
	"errors"
	"image"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

type scriptedStrategy struct {
	name    string
	outcome types.DetectionOutcome
	err     error
	calls   int
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) DetectFaces(ctx context.Context, img image.Image) (types.DetectionOutcome, error) {
	s.calls++
	return s.outcome, s.err
}

func oneFace() types.DetectionOutcome {
	return types.DetectionOutcome{
		Detected:    true,
		Count:       1,
		Regions:     []types.FaceRegion{{X: 10, Y: 10, Width: 50, Height: 50}},
		Confidences: []float64{0.9},
	}
}

func TestDetectFacesFallbackOrder(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10))

	tests := []struct {
		name        string
		primary     *scriptedStrategy
		secondary   *scriptedStrategy
		wantCount   int
		wantErr     bool
		wantPrimary int
		wantBackup  int
	}{
		{
			name:        "primary answers directly",
			primary:     &scriptedStrategy{name: "primary", outcome: oneFace()},
			secondary:   &scriptedStrategy{name: "backup", outcome: oneFace()},
			wantCount:   1,
			wantPrimary: 1,
			wantBackup:  0,
		},
		{
			name:        "primary error falls back",
			primary:     &scriptedStrategy{name: "primary", err: errors.New("offline")},
			secondary:   &scriptedStrategy{name: "backup", outcome: oneFace()},
			wantCount:   1,
			wantPrimary: 1,
			wantBackup:  1,
		},
		{
			name:        "primary empty outcome falls back",
			primary:     &scriptedStrategy{name: "primary"},
			secondary:   &scriptedStrategy{name: "backup", outcome: oneFace()},
			wantCount:   1,
			wantPrimary: 1,
			wantBackup:  1,
		},
		{
			name:        "every strategy empty yields a clean miss",
			primary:     &scriptedStrategy{name: "primary"},
			secondary:   &scriptedStrategy{name: "backup"},
			wantCount:   0,
			wantPrimary: 1,
			wantBackup:  1,
		},
		{
			name:        "every strategy failing surfaces the last error",
			primary:     &scriptedStrategy{name: "primary", err: errors.New("offline")},
			secondary:   &scriptedStrategy{name: "backup", err: errors.New("also offline")},
			wantErr:     true,
			wantPrimary: 1,
			wantBackup:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewDetectionService(tt.primary, tt.secondary)
			outcome, err := service.DetectFaces(context.Background(), frame)

			if tt.wantErr {
				if err == nil {
					t.Error("DetectFaces() expected error but got none")
				}
			} else {
				if err != nil {
					t.Fatalf("DetectFaces() unexpected error = %v", err)
				}
				if outcome.Count != tt.wantCount {
					t.Errorf("DetectFaces() count = %d, want %d", outcome.Count, tt.wantCount)
				}
			}
			if tt.primary.calls != tt.wantPrimary {
				t.Errorf("primary called %d times, want %d", tt.primary.calls, tt.wantPrimary)
			}
			if tt.secondary.calls != tt.wantBackup {
				t.Errorf("backup called %d times, want %d", tt.secondary.calls, tt.wantBackup)
			}
		})
	}
}

func TestDetectionServiceStats(t *testing.T) {
	primary := &scriptedStrategy{name: "primary", err: errors.New("offline")}
	backup := &scriptedStrategy{name: "backup", outcome: oneFace()}
	service := NewDetectionService(primary, backup)

	frame := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < 3; i++ {
		if _, err := service.DetectFaces(context.Background(), frame); err != nil {
			t.Fatalf("DetectFaces() unexpected error = %v", err)
		}
	}

	stats := service.Stats()
	if stats["primary"].Attempts != 3 || stats["primary"].Successes != 0 {
		t.Errorf("primary stats = %+v, want 3 attempts and 0 successes", stats["primary"])
	}
	if stats["backup"].Attempts != 3 || stats["backup"].Successes != 3 {
		t.Errorf("backup stats = %+v, want 3 attempts and 3 successes", stats["backup"])
	}

	// The snapshot is a copy; mutating it must not leak back.
	entry := stats["backup"]
	entry.Attempts = 99
	if service.Stats()["backup"].Attempts != 3 {
		t.Error("Stats() exposed internal counters")
	}
}
