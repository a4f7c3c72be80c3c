package export

import (
	"calltracker/internal/models"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fumiama/go-docx"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const borderColor = "BFBFBF"

// DOCX writes a Word document: title, filter line and a bordered table.
type DOCX struct{}

func (DOCX) ContentType() string { return docxMediaType }

func (DOCX) Filename(criteria models.FilterCriteria, generated time.Time) string {
	return Filename("voters", criteria, generated, ".docx")
}

func (DOCX) Render(w io.Writer, voters []models.VoterRecord, criteria models.FilterCriteria, generated time.Time) error {
	doc := docx.New().WithDefaultTheme().WithA4Page()

	doc.AddParagraph().Justification("center").AddText(title).Bold().Size("36")
	doc.AddParagraph().AddText(criteria.Describe()).Size("20")
	doc.AddParagraph().AddText(fmt.Sprintf("Total Records: %d", len(voters))).Size("20")
	doc.AddParagraph().AddText("Generated: " + generated.Format("2006-01-02 15:04")).Size("20")

	table := doc.AddTable(len(voters)+1, len(tableHeader), 0, &docx.APITableBorderColors{
		Top: borderColor, Left: borderColor, Bottom: borderColor,
		Right: borderColor, InsideH: borderColor, InsideV: borderColor,
	})
	fillRow(table.TableRows[0], tableHeader, true)
	for i, v := range voters {
		fillRow(table.TableRows[i+1], []string{
			strconv.Itoa(i + 1), orDash(v.FullName), contactOrNone(v.Contact), orDash(v.Address), orDash(v.Pincode),
		}, false)
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func fillRow(row *docx.WTableRow, cells []string, header bool) {
	for i, text := range cells {
		r := row.TableCells[i].AddParagraph().AddText(text).Size("18")
		if header {
			r.Bold()
		}
	}
}
