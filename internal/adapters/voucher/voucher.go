// Package voucher renders a booking confirmation as a one-page PDF carrying
// a signed QR code that front-desk staff can check.
package voucher

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"triply/internal/domain"
	"triply/internal/stay"
)

// Payload is the QR content: bookingID|hotelID|checkin|checkout|signature.
func Payload(b domain.Booking, secret []byte) string {
	data := strings.Join([]string{b.ID, b.HotelID, b.Checkin, b.Checkout}, "|")
	return data + "|" + sign(data, secret)
}

// Verify checks a scanned payload against secret and returns the booking id
// it carries.
func Verify(payload string, secret []byte) (string, bool) {
	payload = strings.TrimSpace(payload)
	i := strings.LastIndexByte(payload, '|')
	if i < 0 {
		return "", false
	}
	data, sig := payload[:i], payload[i+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(data, secret))) {
		return "", false
	}
	id, _, _ := strings.Cut(data, "|")
	return id, id != ""
}

func sign(data string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Render builds the voucher PDF.
func Render(b domain.Booking, secret []byte) ([]byte, error) {
	qrPNG, err := qrcode.Encode(Payload(b, secret), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking "+b.ID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Triply booking voucher")
	pdf.Ln(14)

	rows := [][2]string{
		{"Booking", b.ID},
		{"Hotel", b.HotelName},
		{"Room", orDash(b.RoomType)},
		{"Check-in", b.Checkin},
		{"Check-out", b.Checkout},
		{"Stay", nights(b)},
		{"Guests", fmt.Sprint(b.Guests)},
		{"Guest name", b.Name},
		{"Email", b.Email},
		{"Phone", orDash(b.Phone)},
		{"Total", "$" + stay.FormatTotal(b.Total)},
	}
	for _, r := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, r[0])
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr(r[1]))
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, opts, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Present this voucher at check-in. Payment was simulated; no card was charged.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func nights(b domain.Booking) string {
	in, err1 := stay.ParseDate(b.Checkin)
	out, err2 := stay.ParseDate(b.Checkout)
	if err1 != nil || err2 != nil {
		return "-"
	}
	return stay.NightsLabel(stay.Compute(in, out, 0).Nights)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
