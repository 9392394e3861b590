package imagepkg

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	maxQRSize     = 1024
)

// QRCodePNG returns a PNG QR code for text. Sizes outside (0, 1024] fall
// back to DefaultQRSize.
func QRCodePNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, errors.New("qr: empty text")
	}
	if size <= 0 || size > maxQRSize {
		size = DefaultQRSize
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
