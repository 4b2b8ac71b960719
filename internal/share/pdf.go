package share

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// RenderPDF renders a one-page printout of it. When link is non-empty a QR
// code pointing at it is placed in the top right corner.
func RenderPDF(it domain.Itinerary, link string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(it.Name, true)
	pdf.AddPage()

	// gofpdf core fonts are cp1252; translate so names like "Café" print.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(130, 10, tr(it.Name), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	for _, line := range summaryLines(it) {
		pdf.CellFormat(130, 6, tr(line), "", 1, "L", false, 0, "")
	}

	if link != "" {
		png, err := QRCode(link, DefaultQRSize)
		if err != nil {
			return nil, fmt.Errorf("share.RenderPDF: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("qr", 160, 10, 35, 35, false, opts, 0, "")
	}

	pdf.SetY(50)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(15, 8, "#", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Time", "B", 0, "L", false, 0, "")
	pdf.CellFormat(80, 8, "Experience", "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, "Neighborhood", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(it.Items) == 0 {
		pdf.CellFormat(180, 8, "No experiences planned yet.", "", 1, "L", false, 0, "")
	}
	for i, item := range it.Items {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, item.StartTime, "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, tr(truncate(item.Experience.Name, 42)), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, tr(truncate(item.Experience.Neighborhood, 24)), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, domain.FormatPrice(item.Experience.PriceLevel, false), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("share.RenderPDF: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryLines(it domain.Itinerary) []string {
	lines := []string{
		fmt.Sprintf("Occasion: %s", it.Occasion),
		fmt.Sprintf("Duration: %s", it.Duration),
	}
	if it.Budget != nil {
		lines = append(lines, fmt.Sprintf("Budget: %s", it.Budget))
	}
	if it.PartySize != "" {
		lines = append(lines, fmt.Sprintf("Party: %s", it.PartySize))
	}
	total := it.TotalDurationMinutes()
	lines = append(lines,
		fmt.Sprintf("Total time: %dh %02dm", total/60, total%60),
		fmt.Sprintf("Estimated cost: $%d", it.EstimatedCost()),
	)
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "..."
}
