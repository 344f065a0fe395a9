package web

import (
	"context"
	"net/http"

	"github.com/teacherspet/roster/internal/core"
)

// handleImportStudents serves POST /api/students/import.
//
// The request is multipart form data with the CSV under the "file"
// field. The upload size is capped by config; the import runs
// synchronously and the summary is returned in the response.
func (s *Server) handleImportStudents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.NewValidationError("request must include a CSV file under the \"file\" field"))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	summary, err := s.service.ImportStudents(ctx, teacherID(r), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
