// Package qr renders redemption URLs as QR code images.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// RedemptionURL builds the URL a scanner follows to redeem a signature.
func RedemptionURL(baseURL, signature string) string {
	return fmt.Sprintf("%s/authenticate/%s", strings.TrimRight(baseURL, "/"), signature)
}

// RedemptionPNG encodes the redemption URL for a signature as a PNG image.
func RedemptionPNG(baseURL, signature string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(RedemptionURL(baseURL, signature), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %s: %w", signature, err)
	}
	return png, nil
}
