package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/cardtoolkit/internal/surface"
)

// QRSize is the edge length of the footer QR code.
const QRSize = 120

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns the QR code for text as an image for composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(b))
}

// drawFooterQR places the QR code inside the bottom-right margin.
func drawFooterQR(s surface.Surface, text string) error {
	img, err := GenerateQRImage(text, QRSize)
	if err != nil {
		return err
	}
	m := int(Margin)
	s.SetGlobalAlpha(1)
	s.DrawImage(img, s.Width()-m-QRSize, s.Height()-m-QRSize, QRSize, QRSize)
	return nil
}
