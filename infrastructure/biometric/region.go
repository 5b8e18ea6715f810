package biometric

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"veriface.io/infrastructure/biometric/types"
)

// CropFace returns the pixels under region as a standalone image. The region
// is clamped to the frame bounds first, so a detector box that leaks past the
// edge of the frame still yields a usable crop. A region with no overlap at
// all returns nil.
func CropFace(img image.Image, region types.FaceRegion) image.Image {
	if img == nil {
		return nil
	}
	box := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	box = box.Intersect(img.Bounds())
	if box.Empty() {
		return nil
	}
	crop := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(crop, crop.Bounds(), img, box.Min, draw.Src)
	return crop
}

// ResampleSquare resamples img to an edge by edge square with Catmull-Rom
// interpolation. Embedding models take a fixed input geometry, so crops are
// normalized here rather than on the model side.
func ResampleSquare(img image.Image, edge int) image.Image {
	if img == nil || edge <= 0 {
		return nil
	}
	if b := img.Bounds(); b.Dx() == edge && b.Dy() == edge {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, edge, edge))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled
}
