package common

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCodeSize is the side of generated QR images in pixels.
const QRCodeSize = 256

// QRCode renders content as a PNG QR code and returns it base64 encoded.
func QRCode(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(QRCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
