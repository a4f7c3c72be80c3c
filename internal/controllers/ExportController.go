package controllers

import (
	"calltracker/internal/models"
	"calltracker/internal/services"
	"mime"
	"net/http"
	"strconv"
)

type ExportController struct {
	*ApiController
	service services.ExportServiceInterface
}

func NewExportController(base *ApiController, service services.ExportServiceInterface) *ExportController {
	return &ExportController{ApiController: base, service: service}
}

// Export renders the criteria in the body as ?type=pdf_table|pdf_list|docx.
func (ec *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		ec.writeError(w, r, models.ErrUnauthorized)
		return
	}
	typ := models.ExportType(r.URL.Query().Get("type"))
	if typ == "" {
		typ = models.ExportPDFTable
	}
	if !typ.Valid() {
		ec.writeError(w, r, models.NewValidationError("type", "must be one of pdf_table, pdf_list, docx"))
		return
	}
	var criteria models.FilterCriteria
	if !ec.decode(w, r, &criteria) {
		return
	}

	res, err := ec.service.Export(r.Context(), sess.Identity.ID, typ, criteria)
	if err != nil {
		ec.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.Header().Set("X-Record-Count", strconv.Itoa(res.Count))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Body)
}
