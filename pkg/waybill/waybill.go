// Package waybill mints and validates PATHXPRESS waybill numbers and
// renders the QR payload printed on shipping labels.
package waybill

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	qrcode "github.com/skip2/go-qrcode"
)

const prefix = "PX"

var pattern = regexp.MustCompile(`^PX\d{9}$`)

var maxSuffix = big.NewInt(1_000_000_000)

// Generate returns a candidate waybill number: PX plus nine random
// digits. Uniqueness is owned by the database index on shipments; the
// caller retries on a duplicate.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, maxSuffix)
	if err != nil {
		return "", fmt.Errorf("failed to generate waybill suffix: %w", err)
	}
	return fmt.Sprintf("%s%09d", prefix, n.Int64()), nil
}

// Valid reports whether s matches the PX\d{9} wire format.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// LabelPNG renders the QR code printed on the shipping label. The
// payload is the bare waybill number so handheld scanners resolve it
// without parsing.
func LabelPNG(waybillNumber string, size int) ([]byte, error) {
	if !Valid(waybillNumber) {
		return nil, fmt.Errorf("invalid waybill number %q", waybillNumber)
	}
	png, err := qrcode.Encode(waybillNumber, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode label QR: %w", err)
	}
	return png, nil
}
