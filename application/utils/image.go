package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
)

// DecodeBase64Image decodes a base64 payload into an image. Data URI
// prefixes ("data:image/jpeg;base64,...") are tolerated because kiosk
// builds differ in whether they strip them before upload.
func DecodeBase64Image(data string) (image.Image, error) {
	if data == "" {
		return nil, errors.New("image payload is empty")
	}
	if index := strings.Index(data, ","); index != -1 && strings.HasPrefix(data, "data:") {
		data = data[index+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.New("image payload is not valid base64")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.New("image payload is not a supported image format")
	}
	return img, nil
}

// EncodeImageBase64 renders an image as base64 JPEG for transport to the
// vision sidecar and evidence storage.
func EncodeImageBase64(img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("no image supplied")
	}
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buffer.Bytes()), nil
}
