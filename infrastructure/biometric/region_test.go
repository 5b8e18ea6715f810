package biometric

import (
	"image"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

func TestCropFace(t *testing.T) {
	frame := uniformImage(100, 80, 128)

	tests := []struct {
		name       string
		img        image.Image
		region     types.FaceRegion
		wantNil    bool
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "region inside the frame",
			img:        frame,
			region:     types.FaceRegion{X: 10, Y: 10, Width: 40, Height: 30},
			wantWidth:  40,
			wantHeight: 30,
		},
		{
			name:       "overhanging region clamps to the frame",
			img:        frame,
			region:     types.FaceRegion{X: 80, Y: 60, Width: 50, Height: 50},
			wantWidth:  20,
			wantHeight: 20,
		},
		{
			name:    "region entirely outside",
			img:     frame,
			region:  types.FaceRegion{X: 200, Y: 200, Width: 10, Height: 10},
			wantNil: true,
		},
		{
			name:    "nil image",
			img:     nil,
			region:  types.FaceRegion{Width: 10, Height: 10},
			wantNil: true,
		},
		{
			name:    "zero size region",
			img:     frame,
			region:  types.FaceRegion{X: 10, Y: 10},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crop := CropFace(tt.img, tt.region)
			if tt.wantNil {
				if crop != nil {
					t.Errorf("CropFace() = %v, want nil", crop.Bounds())
				}
				return
			}
			if crop == nil {
				t.Fatal("CropFace() returned nil for a valid region")
			}
			bounds := crop.Bounds()
			if bounds.Dx() != tt.wantWidth || bounds.Dy() != tt.wantHeight {
				t.Errorf("CropFace() size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestResampleSquare(t *testing.T) {
	scaled := ResampleSquare(uniformImage(100, 50, 128), 160)
	if scaled == nil {
		t.Fatal("ResampleSquare() returned nil")
	}
	if bounds := scaled.Bounds(); bounds.Dx() != 160 || bounds.Dy() != 160 {
		t.Errorf("ResampleSquare() size = %dx%d, want 160x160", bounds.Dx(), bounds.Dy())
	}

	same := uniformImage(160, 160, 128)
	if got := ResampleSquare(same, 160); got != same {
		t.Error("ResampleSquare() copied an image already at target geometry")
	}

	if got := ResampleSquare(nil, 160); got != nil {
		t.Error("ResampleSquare() built an image from nil input")
	}
	if got := ResampleSquare(same, 0); got != nil {
		t.Error("ResampleSquare() accepted a non-positive edge")
	}
}
