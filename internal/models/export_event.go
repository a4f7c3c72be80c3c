package models

import "time"

type ExportType string

const (
	ExportPDFTable ExportType = "pdf_table"
	ExportPDFList  ExportType = "pdf_list"
	ExportDOCX     ExportType = "docx"
)

func (t ExportType) Valid() bool {
	switch t {
	case ExportPDFTable, ExportPDFList, ExportDOCX:
		return true
	}
	return false
}

type ExportEvent struct {
	ID         string     `json:"id"`
	IdentityID string     `json:"identityId"`
	Type       ExportType `json:"type"`
	CreatedAt  time.Time  `json:"createdAt"`
}
