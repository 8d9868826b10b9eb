package util

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
)

var ErrUnsupportedImage = errors.New("unsupported logo image")

// DataURI embeds raw bytes as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// LogoDataURI validates an uploaded PNG or JPEG logo and returns it as a
// data URI. The MIME type follows the file extension.
func LogoDataURI(filename string, data []byte) (string, error) {
	var mime string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, filename)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return DataURI(mime, data), nil
}
