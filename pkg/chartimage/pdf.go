package chartimage

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/macropower/tripchart/pkg/barchart"
)

const (
	pdfFont = "Helvetica"

	// Pixel dimensions are converted at 96 DPI.
	mmPerPixel = 25.4 / 96
	mmPerPoint = 25.4 / 72
)

func writePDF(w io.Writer, c *barchart.Chart, width, height int) error {
	wd := float64(width) * mmPerPixel
	ht := float64(height) * mmPerPixel

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "mm",
		OrientationStr: "P",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetTitle(c.Title, true)
	pdf.SetCreator("tripchart", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", barchart.DefaultFontSizes.Label)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	measure := func(body string, size float64) (float64, float64) {
		pdf.SetFontSize(size)

		return pdf.GetStringWidth(tr(body)), size * mmPerPoint
	}

	l := c.Layout(wd, ht, measure, barchart.DefaultFontSizes)

	red, green, blue := c.RGB()
	pdf.SetFillColor(int(red), int(green), int(blue))
	pdf.SetDrawColor(int(red), int(green), int(blue))

	for _, b := range l.Bars {
		pdf.Rect(b.Rect.Left, b.Rect.Top, b.Rect.Width(), b.Rect.Height(), "FD")
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Line(l.Plot.Left, l.Plot.Top, l.Plot.Left, l.Plot.Bottom)
	pdf.Line(l.Plot.Left, l.Plot.Bottom, l.Plot.Right, l.Plot.Bottom)

	pdf.SetTextColor(0, 0, 0)

	text := func(t barchart.Text) {
		if t.Body == "" {
			return
		}

		body := tr(t.Body)
		pdf.SetFontSize(t.Size)
		x, y := t.Start(pdf.GetStringWidth(body))

		if t.Rotation != 0 {
			pdf.TransformBegin()
			pdf.TransformRotate(t.Rotation, x, y)
			defer pdf.TransformEnd()
		}

		pdf.Text(x, y, body)
	}

	for _, t := range l.YTicks {
		pdf.Line(l.Plot.Left-l.TickLength, t.Y, l.Plot.Left, t.Y)
		text(t.Label)
	}

	for _, b := range l.Bars {
		pdf.Line(b.Rect.CenterX(), l.Plot.Bottom, b.Rect.CenterX(), l.Plot.Bottom+l.TickLength)
		text(b.Value)
		text(b.Tick)
	}

	text(l.Title)
	text(l.XLabel)
	text(l.YLabel)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	return nil
}
