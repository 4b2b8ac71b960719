// Package share renders itineraries for use outside the API: a printable PDF
// and a QR code that links back to the planner.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length in pixels of served QR codes.
const DefaultQRSize = 256

// ShareURL returns the planner link for an itinerary, e.g.
// https://example.com/itinerary?id=abc.
func ShareURL(baseURL, itineraryID string) string {
	return strings.TrimRight(baseURL, "/") + "/itinerary?id=" + url.QueryEscape(itineraryID)
}

// QRCode encodes link as a PNG of size x size pixels.
func QRCode(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("share.QRCode: %w", err)
	}
	return png, nil
}
