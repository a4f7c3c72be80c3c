package export

import (
	"calltracker/internal/models"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont      = "Helvetica"
	pdfMargin    = 12.0
	pdfBottom    = 18.0
	cellPad      = 1.5
	cellLineH    = 3.6
	listLineH    = 6.0
	listGap      = 4.0
	pdfMediaType = "application/pdf"
)

var (
	tableHeader = []string{"#", "Name", "Contact", "Address", "Pincode"}
	tableWidths = []float64{12, 45, 35, 69, 25}
)

func newDocument(generated time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetCreationDate(generated)
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return pdf
}

// TablePDF renders a numbered table with a filter summary on top.
type TablePDF struct{}

func (TablePDF) ContentType() string { return pdfMediaType }

func (TablePDF) Filename(criteria models.FilterCriteria, generated time.Time) string {
	return Filename("voters", criteria, generated, ".pdf")
}

func (r TablePDF) Render(w io.Writer, voters []models.VoterRecord, criteria models.FilterCriteria, generated time.Time) error {
	pdf := r.build(voters, criteria, generated)
	return pdf.Output(w)
}

func (TablePDF) build(voters []models.VoterRecord, criteria models.FilterCriteria, generated time.Time) *fpdf.Fpdf {
	pdf := newDocument(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, pdfBottom)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr(criteria.Describe()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Records: %d", len(voters)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	tableHead(pdf)
	_, pageH := pdf.GetPageSize()
	for i, v := range voters {
		cells := []string{
			strconv.Itoa(i + 1),
			tr(orDash(v.FullName)),
			tr(contactOrNone(v.Contact)),
			tr(orDash(v.Address)),
			tr(orDash(v.Pincode)),
		}
		lines := make([][]string, len(cells))
		rows := 1
		for c, text := range cells {
			lines[c] = pdf.SplitText(text, tableWidths[c]-2*cellPad)
			rows = max(rows, len(lines[c]))
		}
		h := float64(rows)*cellLineH + 2*cellPad
		if pdf.GetY()+h > pageH-pdfBottom {
			pdf.AddPage()
			tableHead(pdf)
		}
		style := "D"
		if i%2 == 1 {
			pdf.SetFillColor(245, 247, 250)
			style = "FD"
		}
		x, y := pdfMargin, pdf.GetY()
		for c := range cells {
			pdf.Rect(x, y, tableWidths[c], h, style)
			for n, line := range lines[c] {
				pdf.Text(x+cellPad, y+cellPad+float64(n+1)*cellLineH-0.8, line)
			}
			x += tableWidths[c]
		}
		pdf.SetXY(pdfMargin, y+h)
	}
	return pdf
}

func tableHead(pdf *fpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(220, 220, 220)
	for i, h := range tableHeader {
		pdf.CellFormat(tableWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(pdfFont, "", 8)
	pdf.SetTextColor(30, 30, 30)
}

// ListPDF renders one wrapped paragraph per voter.
type ListPDF struct{}

func (ListPDF) ContentType() string { return pdfMediaType }

func (ListPDF) Filename(criteria models.FilterCriteria, generated time.Time) string {
	return Filename("voters_list", criteria, generated, ".pdf")
}

func (r ListPDF) Render(w io.Writer, voters []models.VoterRecord, criteria models.FilterCriteria, generated time.Time) error {
	return r.build(voters, generated).Output(w)
}

func (ListPDF) build(voters []models.VoterRecord, generated time.Time) *fpdf.Fpdf {
	pdf := newDocument(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, v := range voters {
		text := fmt.Sprintf("%s Contact: %s Address: %s", orDash(v.FullName), contactOrNone(v.Contact), orDash(v.Address))
		pdf.MultiCell(0, listLineH, tr(text), "", "L", false)
		pdf.Ln(listGap)
	}
	return pdf
}
