// Package export renders filtered voter lists as downloadable documents.
package export

import (
	"calltracker/internal/models"
	"fmt"
	"io"
	"strings"
	"time"
)

const title = "Voter List Export"

// Renderer turns a search result into a document.
type Renderer interface {
	Render(w io.Writer, voters []models.VoterRecord, criteria models.FilterCriteria, generated time.Time) error
	ContentType() string
	Filename(criteria models.FilterCriteria, generated time.Time) string
}

func New(t models.ExportType) (Renderer, error) {
	switch t {
	case models.ExportPDFTable:
		return &TablePDF{}, nil
	case models.ExportPDFList:
		return &ListPDF{}, nil
	case models.ExportDOCX:
		return &DOCX{}, nil
	default:
		return nil, models.NewValidationError("type", fmt.Sprintf("unknown export type %q", t))
	}
}

// Filename builds prefix[_name][_pincode]_YYYY-MM-DD.ext using the UTC date.
func Filename(prefix string, criteria models.FilterCriteria, generated time.Time, ext string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if name := sanitize(criteria.NamePart()); name != "" {
		b.WriteString("_" + name)
	}
	if pin := sanitize(criteria.Normalize().Pincode); pin != "" {
		b.WriteString("_" + pin)
	}
	b.WriteString("_" + generated.UTC().Format("2006-01-02"))
	b.WriteString(ext)
	return b.String()
}

// sanitize keeps the name usable in a Content-Disposition header.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r == ':' || r < 0x20:
			return -1
		case r == ' ':
			return '_'
		}
		return r
	}, s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func contactOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "No contact"
	}
	return s
}
