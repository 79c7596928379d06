// Package sheetpdf renders a character sheet as a printable parchment-style
// PDF: header, attribute boxes and a two-column skill list.
package sheetpdf

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"trpgdice/internal/sheet"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	titleSize = 18
	fontSize  = 9
	labelSize = 7
	boxW      = 58.0
	boxH      = 44.0
	boxGap    = 8.0
	rowH      = 13.0
)

// Render returns PDF bytes for ch.
func Render(ch sheet.Character) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	drawBackground(pdf)

	// Header
	name := ch.Name
	if name == "" {
		name = "Unnamed"
	}
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+12, margin+14)
	pdf.CellFormat(pageW-2*margin-24, 20, tr(name), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(margin+12, margin+36)
	sub := ch.System
	if ch.Template != "" {
		sub += " (" + ch.Template + ")"
	}
	pdf.CellFormat(pageW-2*margin-24, 12, tr(sub), "", 0, "L", false, 0, "")
	if !ch.CreatedAt.IsZero() {
		pdf.SetXY(margin+12, margin+36)
		pdf.CellFormat(pageW-2*margin-24, 12, ch.CreatedAt.Format("2006-01-02"), "", 0, "R", false, 0, "")
	}
	y := float64(margin) + 58
	pdf.Line(margin+12, y, pageW-margin-12, y)

	// Attribute boxes, wrapped to as many rows as needed
	y += 12
	perRow := int(math.Floor((pageW - 2*margin - 24 + boxGap) / (boxW + boxGap)))
	for i, st := range ch.Attributes {
		col := i % perRow
		if i > 0 && col == 0 {
			y += boxH + boxGap
		}
		x := float64(margin) + 12 + float64(col)*(boxW+boxGap)
		drawStatBox(pdf, tr, x, y, st)
	}
	if len(ch.Attributes) > 0 {
		y += boxH + 16
	}

	// Skills in two columns; extra pages when the list runs long
	if len(ch.Skills) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(margin+12, y)
		pdf.CellFormat(200, 14, "Skills", "", 0, "L", false, 0, "")
		y += 18
	}
	colW := (pageW - 2*margin - 24 - 16) / 2.0
	top := y
	col := 0
	pdf.SetFont("Helvetica", "", fontSize)
	for _, st := range ch.Skills {
		if y+rowH > pageH-margin-12 {
			if col == 0 {
				col = 1
				y = top
			} else {
				pdf.AddPage()
				drawBackground(pdf)
				pdf.SetFont("Helvetica", "", fontSize)
				col = 0
				top = float64(margin) + 16
				y = top
			}
		}
		x := float64(margin) + 12 + float64(col)*(colW+16)
		pdf.SetXY(x, y)
		pdf.CellFormat(colW-40, rowH, tr(st.Name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowH, strconv.Itoa(st.Value), "B", 0, "R", false, 0, "")
		y += rowH
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBackground paints the parchment and its wavy border.
func drawBackground(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")

	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 14, 3)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")

	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
}

func drawStatBox(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, st sheet.Stat) {
	pdf.SetFillColor(250, 244, 228)
	pdf.RoundedRect(x, y, boxW, boxH, 4, "1234", "FD")

	label := st.Name
	if r := []rune(label); len(r) > 12 {
		label = string(r[:10]) + ".."
	}
	pdf.SetFont("Helvetica", "B", labelSize)
	pdf.SetXY(x, y+3)
	pdf.CellFormat(boxW, 9, tr(label), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(x, y+16)
	pdf.CellFormat(boxW, 20, strconv.Itoa(st.Value), "", 0, "C", false, 0, "")
}

// wavyRectPoints returns polygon points for a rectangle whose sides wobble
// sinusoidally.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	side := func(x0, y0, dx, dy, fx, fy float64, from int) {
		for i := from; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pts = append(pts, gofpdf.PointType{
				X: x0 + t*dx + amp*math.Sin(float64(i)*fx),
				Y: y0 + t*dy + amp*math.Cos(float64(i)*fy),
			})
		}
	}
	side(x, y, w, 0, 0.7, 0.5, 0)
	side(x+w, y, 0, h, 0.6, 0.4, 1)
	side(x+w, y+h, -w, 0, 0.8, 0.3, 1)
	side(x, y+h, 0, -h, 0.5, 0.6, 1)
	return pts
}
