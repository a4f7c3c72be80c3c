package export

import (
	"archive/zip"
	"bytes"
	"calltracker/internal/models"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)

func sampleVoters(n int) []models.VoterRecord {
	out := make([]models.VoterRecord, n)
	for i := range out {
		out[i] = models.VoterRecord{
			ID:       fmt.Sprintf("%06d", i+1),
			FullName: fmt.Sprintf("VOTER %d SHARMA", i+1),
			Contact:  "9816000001",
			Address:  "House 12, Sector 4, Dwarka, New Delhi 110075",
			Pincode:  "110075",
		}
	}
	out[0].Contact = ""
	return out
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		criteria models.FilterCriteria
		ext      string
		want     string
	}{
		{"no filters", "voters", models.FilterCriteria{}, ".pdf", "voters_2024-05-01.pdf"},
		{"name and pincode", "voters", models.FilterCriteria{Name: "sharma", Pincode: "1100"}, ".pdf", "voters_sharma_1100_2024-05-01.pdf"},
		{"list prefix", "voters_list", models.FilterCriteria{Pincode: " 176001 "}, ".pdf", "voters_list_176001_2024-05-01.pdf"},
		{"first and last", "voters", models.FilterCriteria{FirstName: "asha", LastName: "rani"}, ".docx", "voters_asha_rani_2024-05-01.docx"},
		{"unsafe characters", "voters", models.FilterCriteria{Name: `ram "lal"/x`}, ".pdf", "voters_ram_lalx_2024-05-01.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.prefix, tt.criteria, generated, tt.ext))
		})
	}
}

func TestFilename_UsesUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 5, 2, 3, 0, 0, 0, ist)
	assert.Equal(t, "voters_2024-05-01.pdf", Filename("voters", models.FilterCriteria{}, local, ".pdf"))
}

func TestNew(t *testing.T) {
	for _, typ := range []models.ExportType{models.ExportPDFTable, models.ExportPDFList, models.ExportDOCX} {
		r, err := New(typ)
		require.NoError(t, err)
		assert.NotEmpty(t, r.ContentType())
	}
	_, err := New("xlsx")
	assert.ErrorIs(t, err, models.ErrValidation)

	r, _ := New(models.ExportPDFList)
	assert.Equal(t, "voters_list_2024-05-01.pdf", r.Filename(models.FilterCriteria{}, generated))
	r, _ = New(models.ExportDOCX)
	assert.Equal(t, "voters_2024-05-01.docx", r.Filename(models.FilterCriteria{}, generated))
}

func TestTablePDF_Render(t *testing.T) {
	var buf bytes.Buffer
	err := TablePDF{}.Render(&buf, sampleVoters(3), models.FilterCriteria{Name: "sharma"}, generated)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTablePDF_Paginates(t *testing.T) {
	small := TablePDF{}.build(sampleVoters(5), models.FilterCriteria{}, generated)
	require.NoError(t, small.Error())
	assert.Equal(t, 1, small.PageCount())

	large := TablePDF{}.build(sampleVoters(200), models.FilterCriteria{}, generated)
	require.NoError(t, large.Error())
	assert.Greater(t, large.PageCount(), 1)
}

func TestTablePDF_EmptyResult(t *testing.T) {
	pdf := TablePDF{}.build(nil, models.FilterCriteria{}, generated)
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageCount())
}

func TestListPDF_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListPDF{}.Render(&buf, sampleVoters(2), models.FilterCriteria{}, generated))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	large := ListPDF{}.build(sampleVoters(120), generated)
	require.NoError(t, large.Error())
	assert.Greater(t, large.PageCount(), 1)
}

func TestDOCX_Render(t *testing.T) {
	voters := sampleVoters(2)
	voters[1].FullName = "R&D <KUMAR>"

	var buf bytes.Buffer
	require.NoError(t, DOCX{}.Render(&buf, voters, models.FilterCriteria{Pincode: "110075"}, generated))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = string(body)
	}
	require.Contains(t, files, "[Content_Types].xml")
	require.Contains(t, files, "_rels/.rels")
	doc := files["word/document.xml"]
	assert.Contains(t, doc, "Voter List Export")
	assert.Contains(t, doc, "Filters: Pincode: 110075")
	assert.Contains(t, doc, "Total Records: 2")
	assert.Contains(t, doc, "No contact")
	assert.Contains(t, doc, "R&amp;D &lt;KUMAR&gt;")
	assert.NotContains(t, doc, "<KUMAR>")

	parsed, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	var tables []*docx.Table
	for _, it := range parsed.Document.Body.Items {
		if tbl, ok := it.(*docx.Table); ok {
			tables = append(tables, tbl)
		}
	}
	require.Len(t, tables, 1)
	assert.Len(t, tables[0].TableRows, 3, "header plus one row per voter")
	assert.Len(t, tables[0].TableRows[0].TableCells, 5)
}
