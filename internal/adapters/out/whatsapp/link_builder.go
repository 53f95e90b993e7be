// Package whatsapp builds click-to-chat links for order summaries and renders
// them as QR codes. Sending the message is left to the customer's device.
package whatsapp

import (
	"strings"
	"unicode"

	"marketplace/internal/pkg/errs"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultBaseURL = "https://wa.me/"

	minQRSize = 128
	maxQRSize = 1024
)

type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder returns a builder for baseURL, wa.me when empty.
func NewLinkBuilder(baseURL string) LinkBuilder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return LinkBuilder{baseURL: baseURL}
}

// Link returns <base><digits>?text=<escapedMessage>. Everything but digits is
// stripped from phone; the message must already be escaped.
func (b LinkBuilder) Link(phone, escapedMessage string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", errs.NewValueIsInvalidError("phone")
	}

	return b.baseURL + digits + "?text=" + escapedMessage, nil
}

// QRCode renders link as a PNG of size×size pixels.
func (b LinkBuilder) QRCode(link string, size int) ([]byte, error) {
	if link == "" {
		return nil, errs.NewValueIsRequiredError("link")
	}
	if size < minQRSize || size > maxQRSize {
		return nil, errs.NewValueIsOutOfRangeError("size", size, minQRSize, maxQRSize)
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}
